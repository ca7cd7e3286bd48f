package rosh

import (
	"fmt"
	"strings"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// RiskManagementArrangements asks which multi-agency arrangements the
// person is part of. The answer is a checkbox group where "no" stands
// alone.
type RiskManagementArrangements struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewRiskManagementArrangements constructs the page.
func NewRiskManagementArrangements(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &RiskManagementArrangements{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["risk-management-arrangements"],
	}
}

func (p *RiskManagementArrangements) Name() string { return "risk-management-arrangements" }

func (p *RiskManagementArrangements) Title() string {
	return fmt.Sprintf("Risk management arrangements for %s", p.personName)
}

func (p *RiskManagementArrangements) Body() application.AnswerBag { return p.body }

func (p *RiskManagementArrangements) Previous() string { return "reducing-risk" }

func (p *RiskManagementArrangements) Next() string { return "cell-share-information" }

func (p *RiskManagementArrangements) Errors() map[string]string {
	errors := map[string]string{}

	arrangements := application.Strings(p.body, "arrangements")
	if len(arrangements) == 0 {
		errors["arrangements"] = "Select the risk management arrangements, or select 'No, this person is not part of these arrangements'"
		return errors
	}

	if contains(arrangements, "no") && len(arrangements) > 1 {
		errors["arrangements"] = "Select the risk management arrangements, or select 'No, this person is not part of these arrangements'"
		return errors
	}

	for _, a := range []string{"mappa", "marac", "iom"} {
		if contains(arrangements, a) && application.String(p.body, a+"Details") == "" {
			errors[a+"Details"] = fmt.Sprintf("Provide details about the %s arrangement", strings.ToUpper(a))
		}
	}

	return errors
}

// OnSave drops the detail answers for any arrangement left unselected.
func (p *RiskManagementArrangements) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	arrangements := application.Strings(body, "arrangements")
	for _, a := range []string{"mappa", "marac", "iom"} {
		if !contains(arrangements, a) {
			delete(body, a+"Details")
		}
	}
	return body
}

func (p *RiskManagementArrangements) Response() map[string]string {
	q := p.questions["arrangements"]
	labels := make([]string, 0, 3)
	for _, a := range application.Strings(p.body, "arrangements") {
		if label, ok := q.Answers[a]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, a)
		}
	}

	response := map[string]string{
		q.Text: strings.Join(labels, ", "),
	}
	for _, field := range []string{"mappaDetails", "maracDetails", "iomDetails"} {
		response[p.questions[field].Text] = application.String(p.body, field)
	}
	return form.PruneResponse(response)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
