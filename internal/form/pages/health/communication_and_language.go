package health

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// CommunicationAndLanguage asks about communication, interpretation, and
// sensory support needs.
type CommunicationAndLanguage struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewCommunicationAndLanguage constructs the page.
func NewCommunicationAndLanguage(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &CommunicationAndLanguage{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)["health-needs"]["communication-and-language"],
	}
}

func (p *CommunicationAndLanguage) Name() string { return "communication-and-language" }

func (p *CommunicationAndLanguage) Title() string {
	return fmt.Sprintf("Communication and language needs for %s", p.personName)
}

func (p *CommunicationAndLanguage) Body() application.AnswerBag { return p.body }

func (p *CommunicationAndLanguage) Previous() string { return "physical-health" }

func (p *CommunicationAndLanguage) Next() string { return "other-health" }

func (p *CommunicationAndLanguage) Errors() map[string]string {
	errors := map[string]string{}

	if application.String(p.body, "hasCommunicationNeeds") == "" {
		errors["hasCommunicationNeeds"] = "Confirm whether they have additional communication needs"
	}
	if application.String(p.body, "hasCommunicationNeeds") == "yes" &&
		application.String(p.body, "communicationDetail") == "" {
		errors["communicationDetail"] = "Describe their communication needs"
	}

	if application.String(p.body, "requiresInterpreter") == "" {
		errors["requiresInterpreter"] = "Confirm whether they need an interpreter"
	}
	if application.String(p.body, "requiresInterpreter") == "yes" &&
		application.String(p.body, "interpretationDetail") == "" {
		errors["interpretationDetail"] = "Name the language they need an interpreter for"
	}

	if application.String(p.body, "hasSupportNeeds") == "" {
		errors["hasSupportNeeds"] = "Confirm whether they need support to see, hear, speak, or understand"
	}
	if application.String(p.body, "hasSupportNeeds") == "yes" &&
		application.String(p.body, "supportDetail") == "" {
		errors["supportDetail"] = "Describe their support needs"
	}

	return errors
}

// OnSave drops the detail answers attached to any top-level "no".
func (p *CommunicationAndLanguage) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "hasCommunicationNeeds") == "no" {
		delete(body, "communicationDetail")
	}
	if application.String(body, "requiresInterpreter") == "no" {
		delete(body, "interpretationDetail")
	}
	if application.String(body, "hasSupportNeeds") == "no" {
		delete(body, "supportDetail")
	}
	return body
}

func (p *CommunicationAndLanguage) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{
		"hasCommunicationNeeds", "communicationDetail",
		"requiresInterpreter", "interpretationDetail",
		"hasSupportNeeds", "supportDetail",
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
