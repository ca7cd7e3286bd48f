package health

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// OtherHealth asks about long term conditions and seizures.
type OtherHealth struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewOtherHealth constructs the page.
func NewOtherHealth(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &OtherHealth{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)["health-needs"]["other-health"],
	}
}

func (p *OtherHealth) Name() string { return "other-health" }

func (p *OtherHealth) Title() string {
	return fmt.Sprintf("Other health needs for %s", p.personName)
}

func (p *OtherHealth) Body() application.AnswerBag { return p.body }

func (p *OtherHealth) Previous() string { return "communication-and-language" }

func (p *OtherHealth) Next() string { return "" }

func (p *OtherHealth) Errors() map[string]string {
	errors := map[string]string{}

	if application.String(p.body, "hasLongTermHealthCondition") == "" {
		errors["hasLongTermHealthCondition"] = "Confirm whether they are managing any long term health conditions"
	}
	if application.String(p.body, "hasLongTermHealthCondition") == "yes" &&
		application.String(p.body, "healthConditionDetail") == "" {
		errors["healthConditionDetail"] = "Describe the long term health conditions"
	}

	if application.String(p.body, "hasSeizures") == "" {
		errors["hasSeizures"] = "Confirm whether they have experienced seizures or epilepsy"
	}
	if application.String(p.body, "hasSeizures") == "yes" &&
		application.String(p.body, "seizuresDetail") == "" {
		errors["seizuresDetail"] = "Describe the type of seizures and any treatment"
	}

	return errors
}

// OnSave drops the detail answers attached to any top-level "no".
func (p *OtherHealth) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "hasLongTermHealthCondition") == "no" {
		delete(body, "healthConditionDetail")
	}
	if application.String(body, "hasSeizures") == "no" {
		delete(body, "seizuresDetail")
	}
	return body
}

func (p *OtherHealth) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{
		"hasLongTermHealthCondition", "healthConditionDetail",
		"hasSeizures", "seizuresDetail",
	} {
		q := p.questions[field]
		value := application.String(p.body, field)
		if q.Answers != nil {
			response[q.Text] = q.Answers[value]
			continue
		}
		response[q.Text] = value
	}
	return form.PruneResponse(response)
}
