// Package eligibility holds the pages of the confirm-eligibility task, the
// gate every other task depends on.
package eligibility

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// ConfirmEligibility asks whether the person qualifies for short-term
// accommodation.
type ConfirmEligibility struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	question    form.Question
}

// NewConfirmEligibility constructs the page.
func NewConfirmEligibility(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &ConfirmEligibility{
		application: app,
		body:        body,
		personName:  personName,
		question:    form.Questions(personName).Question("confirm-eligibility", "confirm-eligibility", "isEligible"),
	}
}

func (p *ConfirmEligibility) Name() string { return "confirm-eligibility" }

func (p *ConfirmEligibility) Title() string {
	return fmt.Sprintf("Check %s is eligible for short-term accommodation", p.personName)
}

func (p *ConfirmEligibility) Body() application.AnswerBag { return p.body }

func (p *ConfirmEligibility) Previous() string { return "taskList" }

func (p *ConfirmEligibility) Next() string { return "" }

func (p *ConfirmEligibility) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "isEligible") == "" {
		errors["isEligible"] = fmt.Sprintf("Confirm whether %s is eligible", p.personName)
	}
	return errors
}

func (p *ConfirmEligibility) Response() map[string]string {
	return form.PruneResponse(map[string]string{
		p.question.Text: p.question.Answers[application.String(p.body, "isEligible")],
	})
}
