package rosh

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// AdditionalRiskInformation is the final page of the task and collects any
// risk information the earlier pages did not cover.
type AdditionalRiskInformation struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewAdditionalRiskInformation constructs the page.
func NewAdditionalRiskInformation(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &AdditionalRiskInformation{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["additional-risk-information"],
	}
}

func (p *AdditionalRiskInformation) Name() string { return "additional-risk-information" }

func (p *AdditionalRiskInformation) Title() string {
	return fmt.Sprintf("Additional risk information for %s", p.personName)
}

func (p *AdditionalRiskInformation) Body() application.AnswerBag { return p.body }

func (p *AdditionalRiskInformation) Previous() string { return "cell-share-information" }

func (p *AdditionalRiskInformation) Next() string { return "" }

func (p *AdditionalRiskInformation) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "hasAdditionalInformation") == "" {
		errors["hasAdditionalInformation"] = "Select whether there is any additional risk information"
	}
	if application.String(p.body, "hasAdditionalInformation") == "yes" &&
		application.String(p.body, "additionalInformationDetail") == "" {
		errors["additionalInformationDetail"] = "Enter the additional risk information"
	}
	return errors
}

// OnSave drops the detail answer when there is nothing to add.
func (p *AdditionalRiskInformation) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "hasAdditionalInformation") == "no" {
		delete(body, "additionalInformationDetail")
	}
	return body
}

func (p *AdditionalRiskInformation) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{"hasAdditionalInformation", "additionalInformationDetail"} {
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
