package rosh

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// RiskToOthers records who is at risk from the person and the nature of
// that risk. The answers may have been pre-filled from OASys.
type RiskToOthers struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewRiskToOthers constructs the page.
func NewRiskToOthers(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &RiskToOthers{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["risk-to-others"],
	}
}

func (p *RiskToOthers) Name() string { return "risk-to-others" }

func (p *RiskToOthers) Title() string {
	return fmt.Sprintf("Risk to others for %s", p.personName)
}

func (p *RiskToOthers) Body() application.AnswerBag { return p.body }

func (p *RiskToOthers) Previous() string { return "summary" }

func (p *RiskToOthers) Next() string { return "risk-factors" }

func (p *RiskToOthers) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "whoIsAtRisk") == "" {
		errors["whoIsAtRisk"] = "Describe who is at risk"
	}
	if application.String(p.body, "natureOfRisk") == "" {
		errors["natureOfRisk"] = "Describe the nature of the risk"
	}
	return errors
}

func (p *RiskToOthers) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{"whoIsAtRisk", "natureOfRisk"} {
		response[p.questions[field].Text] = application.String(p.body, field)
	}
	return form.PruneResponse(response)
}
