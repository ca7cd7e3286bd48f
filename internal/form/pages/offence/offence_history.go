package offence

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

// OffenceHistory is the repeating-group page of the task. Its stored page
// value is the list of offence records itself rather than an answer bag, so
// the page reads the list from the application snapshot.
type OffenceHistory struct {
	application *application.Application
	body        application.AnswerBag
	personName  string
	records     []application.AnswerBag
}

// NewOffenceHistory constructs the page.
func NewOffenceHistory(body application.AnswerBag, app *application.Application, _ string) form.Page {
	raw, _ := app.PageValue(taskSlug, "offence-history")
	return &OffenceHistory{
		application: app,
		body:        body,
		personName:  form.NameOrPlaceholder(app.Person),
		records:     application.Records(raw),
	}
}

func (p *OffenceHistory) Name() string { return "offence-history" }

func (p *OffenceHistory) Title() string {
	return fmt.Sprintf("Offence history for %s", p.personName)
}

func (p *OffenceHistory) Body() application.AnswerBag { return p.body }

func (p *OffenceHistory) Previous() string { return "any-previous-convictions" }

func (p *OffenceHistory) Next() string { return "" }

// Errors blocks completion when convictions were declared but no offence
// has been added yet.
func (p *OffenceHistory) Errors() map[string]string {
	errors := map[string]string{}
	declared := application.String(p.application.Bag(taskSlug, "any-previous-convictions"), "hasAnyPreviousConvictions")
	if declared == "yes" && len(p.records) == 0 {
		errors["offenceList"] = "Add at least one previous offence"
	}
	return errors
}

// Response is empty: the record list is surfaced whole through the review
// projection rather than as flat question/answer pairs.
func (p *OffenceHistory) Response() map[string]string {
	return map[string]string{}
}

// Records returns the stored offence records.
func (p *OffenceHistory) Records() []application.AnswerBag { return p.records }

// ValidateRecord checks one offence record before it is appended to the
// stored list.
func ValidateRecord(record application.AnswerBag) map[string]string {
	errors := map[string]string{}
	if application.String(record, "titleAndNumber") == "" {
		errors["titleAndNumber"] = "Enter the offence title and number"
	}
	if application.String(record, "offenceCategory") == "" {
		errors["offenceCategory"] = "Select the offence category"
	}
	if application.String(record, "offenceDate") == "" {
		errors["offenceDate"] = "Enter the date the offence was committed"
	}
	if application.String(record, "sentenceLength") == "" {
		errors["sentenceLength"] = "Enter the sentence length"
	}
	if application.String(record, "summary") == "" {
		errors["summary"] = "Provide a summary of the offence"
	}
	return errors
}
