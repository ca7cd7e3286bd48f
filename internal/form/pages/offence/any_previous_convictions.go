// Package offence holds the pages of the offending-history task.
package offence

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

const taskSlug = "offending-history"

// AnyPreviousConvictions is the branch page: a "yes" answer routes into
// the offence history list, anything else ends the task.
type AnyPreviousConvictions struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewAnyPreviousConvictions constructs the page.
func NewAnyPreviousConvictions(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &AnyPreviousConvictions{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["any-previous-convictions"],
	}
}

func (p *AnyPreviousConvictions) Name() string { return "any-previous-convictions" }

func (p *AnyPreviousConvictions) Title() string {
	return fmt.Sprintf("Does %s have any previous convictions?", p.personName)
}

func (p *AnyPreviousConvictions) Body() application.AnswerBag { return p.body }

func (p *AnyPreviousConvictions) Previous() string { return "taskList" }

func (p *AnyPreviousConvictions) Next() string {
	if application.String(p.body, "hasAnyPreviousConvictions") == "yes" {
		return "offence-history"
	}
	return ""
}

func (p *AnyPreviousConvictions) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "hasAnyPreviousConvictions") == "" {
		errors["hasAnyPreviousConvictions"] = fmt.Sprintf("Confirm whether %s has any previous convictions", p.personName)
	}
	return errors
}

func (p *AnyPreviousConvictions) Response() map[string]string {
	q := p.questions["hasAnyPreviousConvictions"]
	response := map[string]string{
		q.Text: q.Answers[application.String(p.body, "hasAnyPreviousConvictions")],
	}
	return form.PruneResponse(response)
}
