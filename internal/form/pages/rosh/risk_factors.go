package rosh

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// RiskFactors records the circumstances under which risk rises.
type RiskFactors struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewRiskFactors constructs the page.
func NewRiskFactors(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &RiskFactors{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["risk-factors"],
	}
}

func (p *RiskFactors) Name() string { return "risk-factors" }

func (p *RiskFactors) Title() string {
	return fmt.Sprintf("Risk factors for %s", p.personName)
}

func (p *RiskFactors) Body() application.AnswerBag { return p.body }

func (p *RiskFactors) Previous() string { return "risk-to-others" }

func (p *RiskFactors) Next() string { return "reducing-risk" }

func (p *RiskFactors) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "circumstancesLikelyToIncreaseRisk") == "" {
		errors["circumstancesLikelyToIncreaseRisk"] = "Describe the circumstances that are likely to increase risk"
	}
	if application.String(p.body, "whenIsRiskLikelyToBeGreatest") == "" {
		errors["whenIsRiskLikelyToBeGreatest"] = "Describe when the risk is likely to be the greatest"
	}
	return errors
}

func (p *RiskFactors) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{"circumstancesLikelyToIncreaseRisk", "whenIsRiskLikelyToBeGreatest"} {
		response[p.questions[field].Text] = application.String(p.body, field)
	}
	return form.PruneResponse(response)
}
