package rosh

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// CellShareInformation asks whether there is anything to flag about cell
// sharing.
type CellShareInformation struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	questions   map[string]form.Question
}

// NewCellShareInformation constructs the page.
func NewCellShareInformation(body application.AnswerBag, app *application.Application, _ string) form.Page {
	personName := form.NameOrPlaceholder(app.Person)
	return &CellShareInformation{
		application: app,
		body:        body,
		personName:  personName,
		questions:   form.Questions(personName)[taskSlug]["cell-share-information"],
	}
}

func (p *CellShareInformation) Name() string { return "cell-share-information" }

func (p *CellShareInformation) Title() string {
	return fmt.Sprintf("Cell share information for %s", p.personName)
}

func (p *CellShareInformation) Body() application.AnswerBag { return p.body }

func (p *CellShareInformation) Previous() string { return "risk-management-arrangements" }

func (p *CellShareInformation) Next() string { return "additional-risk-information" }

func (p *CellShareInformation) Errors() map[string]string {
	errors := map[string]string{}
	if application.String(p.body, "hasCellShareComments") == "" {
		errors["hasCellShareComments"] = "Select whether there are any comments about cell sharing"
	}
	if application.String(p.body, "hasCellShareComments") == "yes" &&
		application.String(p.body, "cellShareInformationDetail") == "" {
		errors["cellShareInformationDetail"] = "Provide information about cell sharing"
	}
	return errors
}

// OnSave drops the detail answer when there are no comments.
func (p *CellShareInformation) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "hasCellShareComments") == "no" {
		delete(body, "cellShareInformationDetail")
	}
	return body
}

func (p *CellShareInformation) Response() map[string]string {
	response := map[string]string{}
	for _, field := range []string{"hasCellShareComments", "cellShareInformationDetail"} {
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
