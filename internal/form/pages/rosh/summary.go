package rosh

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// Summary shows the imported RoSH risk ratings and takes optional
// additional comments. Every field is optional so it never blocks the
// wizard.
type Summary struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewSummary constructs the page.
func NewSummary(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &Summary{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["summary"],
	}
}

func (p *Summary) Name() string { return "summary" }

func (p *Summary) Title() string {
	return fmt.Sprintf("Risk of serious harm (RoSH) summary for %s", p.personName)
}

func (p *Summary) Body() application.AnswerBag { return p.body }

func (p *Summary) Previous() string { return "taskList" }

func (p *Summary) Next() string { return "risk-to-others" }

func (p *Summary) Errors() map[string]string { return map[string]string{} }

// OnSave records whether the ratings came from OASys so the stored bag is
// never empty and the status walk can pass through this page.
func (p *Summary) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "status") == "" {
		if application.String(body, importSentinel) != "" {
			body["status"] = "retrieved"
		} else {
			body["status"] = "unretrieved"
		}
	}
	return body
}

func (p *Summary) Response() map[string]string {
	response := map[string]string{
		"Overall risk rating":        p.rating("overallRisk"),
		"Risk to children":           p.rating("riskToChildren"),
		"Risk to known adult":        p.rating("riskToKnownAdult"),
		"Risk to public":             p.rating("riskToPublic"),
		"Risk to staff":              p.rating("riskToStaff"),
		p.questions["additionalComments"].Text: application.String(p.body, "additionalComments"),
	}
	return form.PruneResponse(response)
}

// rating falls back to "Unknown" so a partial import still renders a full
// ratings table.
func (p *Summary) rating(field string) string {
	if v := application.String(p.body, field); v != "" {
		return form.SentenceCase(v)
	}
	return "Unknown"
}
