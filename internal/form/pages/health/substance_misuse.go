// Package health holds the pages of the health-needs task.
package health

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// SubstanceMisuse asks about illegal substance use and related support.
type SubstanceMisuse struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewSubstanceMisuse constructs the page.
func NewSubstanceMisuse(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &SubstanceMisuse{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)["health-needs"]["substance-misuse"],
	}
}

func (p *SubstanceMisuse) Name() string { return "substance-misuse" }

func (p *SubstanceMisuse) Title() string {
	return fmt.Sprintf("Substance misuse needs for %s", p.personName)
}

func (p *SubstanceMisuse) Body() application.AnswerBag { return p.body }

func (p *SubstanceMisuse) Previous() string { return "taskList" }

func (p *SubstanceMisuse) Next() string { return "physical-health" }

func (p *SubstanceMisuse) Errors() map[string]string {
	errors := map[string]string{}

	if application.String(p.body, "usesIllegalSubstances") == "" {
		errors["usesIllegalSubstances"] = "Confirm whether they take any illegal substances"
	}
	if application.String(p.body, "usesIllegalSubstances") == "yes" {
		if application.String(p.body, "substanceMisuseHistory") == "" {
			errors["substanceMisuseHistory"] = "Name the illegal substances they take"
		}
		if application.String(p.body, "substanceMisuseDetail") == "" {
			errors["substanceMisuseDetail"] = "Describe how often they take substances, by what method and how much"
		}
	}

	if application.String(p.body, "engagedWithDrugAndAlcoholService") == "" {
		errors["engagedWithDrugAndAlcoholService"] = "Confirm whether they are engaged with a drug and alcohol service"
	}
	if application.String(p.body, "engagedWithDrugAndAlcoholService") == "yes" &&
		application.String(p.body, "drugAndAlcoholServiceDetail") == "" {
		errors["drugAndAlcoholServiceDetail"] = "Provide the name of the drug and alcohol service"
	}

	if application.String(p.body, "requiresSubstituteMedication") == "" {
		errors["requiresSubstituteMedication"] = "Confirm whether they require substitute medication"
	}
	if application.String(p.body, "requiresSubstituteMedication") == "yes" &&
		application.String(p.body, "substituteMedicationDetail") == "" {
		errors["substituteMedicationDetail"] = "Provide details of their substitute medication"
	}

	return errors
}

// OnSave drops the detail answers attached to any top-level "no".
func (p *SubstanceMisuse) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "usesIllegalSubstances") == "no" {
		delete(body, "substanceMisuseHistory")
		delete(body, "substanceMisuseDetail")
	}
	if application.String(body, "engagedWithDrugAndAlcoholService") == "no" {
		delete(body, "drugAndAlcoholServiceDetail")
	}
	if application.String(body, "requiresSubstituteMedication") == "no" {
		delete(body, "substituteMedicationDetail")
	}
	return body
}

func (p *SubstanceMisuse) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{
		"usesIllegalSubstances", "substanceMisuseHistory", "substanceMisuseDetail",
		"engagedWithDrugAndAlcoholService", "drugAndAlcoholServiceDetail",
		"requiresSubstituteMedication", "substituteMedicationDetail",
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
