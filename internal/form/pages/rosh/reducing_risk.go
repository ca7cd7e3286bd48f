package rosh

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// ReducingRisk records the factors likely to reduce risk.
type ReducingRisk struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewReducingRisk constructs the page.
func NewReducingRisk(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &ReducingRisk{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["reducing-risk"],
	}
}

func (p *ReducingRisk) Name() string { return "reducing-risk" }

func (p *ReducingRisk) Title() string {
	return fmt.Sprintf("Reducing risk for %s", p.personName)
}

func (p *ReducingRisk) Body() application.AnswerBag { return p.body }

func (p *ReducingRisk) Previous() string { return "risk-factors" }

func (p *ReducingRisk) Next() string { return "risk-management-arrangements" }

func (p *ReducingRisk) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "factorsLikelyToReduceRisk") == "" {
		errors["factorsLikelyToReduceRisk"] = "Describe the factors that are likely to reduce risk"
	}
	return errors
}

func (p *ReducingRisk) Response() map[string]string {
	response := map[string]string{
		p.questions["factorsLikelyToReduceRisk"].Text: application.String(p.body, "factorsLikelyToReduceRisk"),
	}
	return form.PruneResponse(response)
}
