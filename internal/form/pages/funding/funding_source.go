// Package funding holds the pages of the funding-information task.
package funding

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// FundingSource asks how the person will pay for their accommodation.
type FundingSource struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	question    form.Question
}

// NewFundingSource constructs the page.
func NewFundingSource(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &FundingSource{
		application: app,
		body:        body,
		personName:  personName,
		question:    form.Questions(personName).Question("funding-information", "funding-source", "fundingSource"),
	}
}

func (p *FundingSource) Name() string { return "funding-source" }

func (p *FundingSource) Title() string {
	return fmt.Sprintf("Funding information for %s", p.personName)
}

func (p *FundingSource) Body() application.AnswerBag { return p.body }

func (p *FundingSource) Previous() string { return "taskList" }

func (p *FundingSource) Next() string { return "" }

func (p *FundingSource) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "fundingSource") == "" {
		errors["fundingSource"] = "Select a funding source"
	}
	return errors
}

func (p *FundingSource) Response() map[string]string {
	return form.PruneResponse(map[string]string{
		p.question.Text: p.question.Answers[application.String(p.body, "fundingSource")],
	})
}
