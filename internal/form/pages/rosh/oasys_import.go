// Package rosh holds the pages of the risk-of-serious-harm task, including
// the OASys import entry point that routes on the shape of stored data.
package rosh

import (
	"context"
	"fmt"
	"time"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/client"
	"github.com/caseflow/intake_service/internal/form"
)

const (
	taskSlug       = "risk-of-serious-harm"
	importSentinel = "dateOfOasysImport"
)

// OasysImport offers to import the person's RoSH assessment from OASys. The
// page is the single entry point for the task: depending on what is already
// stored it may resolve to the summary page or the first manual page
// instead.
type OasysImport struct {
	application    *application.Application
	body           application.AnswerBag
	personName     string
	hasOasysRecord bool
	oasysStarted   string
	oasysCompleted string
	taskData       application.Data
}

// InitializeOasysImport fetches the OASys record on first entry, or routes
// to the page the stored data implies. A not-found assessment produces the
// "no record" state; any other fetch failure propagates unmodified.
func InitializeOasysImport(ctx context.Context, body application.AnswerBag, app *application.Application, token string, services *form.Services) (form.Page, error) {
	if len(app.Data[taskSlug]) == 0 {
		var rosh client.OasysRiskOfSeriousHarm
		if services != nil && services.Oasys != nil {
			var err error
			rosh, err = services.Oasys.RiskOfSeriousHarm(ctx, token, app.Person.CRN)
			if err != nil {
				if !client.IsNotFound(err) {
					return nil, err
				}
				rosh = client.OasysRiskOfSeriousHarm{}
			}
		}

		page := &OasysImport{
			application:    app,
			body:           body,
			personName:     form.NameOrPlaceholder(app.Person),
			hasOasysRecord: !rosh.Empty(),
		}
		if page.hasOasysRecord {
			page.oasysStarted = isoToUIDate(rosh.DateStarted)
			page.oasysCompleted = isoToUIDate(rosh.DateCompleted)
			page.taskData = importedTaskData(rosh, time.Now())
		}
		return page, nil
	}

	if importedFromOasys(app) {
		return NewSummary(app.BagOrEmpty(taskSlug, "summary"), app, ""), nil
	}
	return NewRiskToOthers(app.BagOrEmpty(taskSlug, "risk-to-others"), app, ""), nil
}

// NewOasysImport constructs the page without external data; the wizard
// normally enters through InitializeOasysImport.
func NewOasysImport(body application.AnswerBag, app *application.Application, _ string) form.Page {
	return &OasysImport{
		application: app,
		body:        body,
		personName:  form.NameOrPlaceholder(app.Person),
	}
}

func (p *OasysImport) Name() string { return "oasys-import" }

func (p *OasysImport) Title() string {
	return fmt.Sprintf("Import %s's risk of serious harm (RoSH) data from OASys", p.personName)
}

func (p *OasysImport) Body() application.AnswerBag { return p.body }

func (p *OasysImport) Previous() string { return "taskList" }

func (p *OasysImport) Next() string { return "summary" }

func (p *OasysImport) Errors() map[string]string { return map[string]string{} }

func (p *OasysImport) Response() map[string]string { return map[string]string{} }

// OnSave stamps the visit so the task walk sees this page as answered when
// the applicant continues without an importable record.
func (p *OasysImport) OnSave() application.AnswerBag {
	body := form.CopyBag(p.body)
	if application.String(body, "oasysImportDate") == "" {
		body["oasysImportDate"] = time.Now().UTC().Format(time.RFC3339)
	}
	return body
}

// HasOasysRecord reports whether an importable assessment was found.
func (p *OasysImport) HasOasysRecord() bool { return p.hasOasysRecord }

// OasysStarted returns the assessment's start date in display form.
func (p *OasysImport) OasysStarted() string { return p.oasysStarted }

// OasysCompleted returns the assessment's completion date in display form,
// or "" for an assessment still in progress.
func (p *OasysImport) OasysCompleted() string { return p.oasysCompleted }

// TaskData returns the pre-computed importable answer set, ready to be
// written into the application document when the applicant confirms the
// import.
func (p *OasysImport) TaskData() application.Data { return p.taskData }

// importedFromOasys detects the import sentinel in any of the imported
// pages' stored bags.
func importedFromOasys(app *application.Application) bool {
	for _, page := range []string{"risk-to-others", "risk-factors", "reducing-risk"} {
		bag := app.Bag(taskSlug, page)
		if bag == nil {
			continue
		}
		if _, ok := bag[importSentinel]; ok {
			return true
		}
	}
	return false
}

// importedTaskData maps the OASys RoSH questions onto the task's pages.
func importedTaskData(rosh client.OasysRiskOfSeriousHarm, now time.Time) application.Data {
	importDate := now.UTC().Format(time.RFC3339)
	pages := map[string]any{
		"oasys-import": map[string]any{"oasysImportDate": importDate},
		"summary":      map[string]any{importSentinel: importDate, "status": "retrieved"},
	}

	set := func(page, field, answer string) {
		bag, _ := pages[page].(map[string]any)
		if bag == nil {
			bag = map[string]any{importSentinel: importDate}
		}
		bag[field] = answer
		pages[page] = bag
	}

	for _, q := range rosh.Rosh {
		switch q.QuestionNumber {
		case "R10.1":
			set("risk-to-others", "whoIsAtRisk", q.Answer)
		case "R10.2":
			set("risk-to-others", "natureOfRisk", q.Answer)
		case "R10.3":
			set("risk-factors", "whenIsRiskLikelyToBeGreatest", q.Answer)
		case "R10.4":
			set("risk-factors", "circumstancesLikelyToIncreaseRisk", q.Answer)
		case "R10.5":
			set("reducing-risk", "factorsLikelyToReduceRisk", q.Answer)
		}
	}

	return application.Data{taskSlug: pages}
}

// isoToUIDate renders an ISO timestamp as "2 January 2006" display copy.
func isoToUIDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.Format("2 January 2006")
}
