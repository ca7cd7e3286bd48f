package health

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// PhysicalHealth asks about physical health needs and mobility.
type PhysicalHealth struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewPhysicalHealth constructs the page.
func NewPhysicalHealth(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &PhysicalHealth{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)["health-needs"]["physical-health"],
	}
}

func (p *PhysicalHealth) Name() string { return "physical-health" }

func (p *PhysicalHealth) Title() string {
	return fmt.Sprintf("Physical health needs for %s", p.personName)
}

func (p *PhysicalHealth) Body() application.AnswerBag { return p.body }

func (p *PhysicalHealth) Previous() string { return "substance-misuse" }

func (p *PhysicalHealth) Next() string { return "communication-and-language" }

func (p *PhysicalHealth) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "hasPhysicalNeeds") == "" {
		errors["hasPhysicalNeeds"] = "Confirm whether they have physical health needs"
	}
	if application.String(p.body, "hasPhysicalNeeds") == "yes" {
		if application.String(p.body, "physicalNeedsDetail") == "" {
			errors["physicalNeedsDetail"] = "Describe their physical health needs"
		}
		if application.String(p.body, "canClimbStairs") == "" {
			errors["canClimbStairs"] = "Confirm whether they can climb stairs"
		}
	}
	return errors
}

// OnSave drops the detail answers when there are no physical health needs.
func (p *PhysicalHealth) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "hasPhysicalNeeds") == "no" {
		delete(body, "physicalNeedsDetail")
		delete(body, "canClimbStairs")
	}
	return body
}

func (p *PhysicalHealth) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{"hasPhysicalNeeds", "physicalNeedsDetail", "canClimbStairs"} {
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
