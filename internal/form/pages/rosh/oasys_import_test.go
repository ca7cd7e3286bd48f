package rosh

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/client"
	"github.com/caseflow/intake_service/internal/form"
)

type stubOasys struct {
	rosh  client.OasysRiskOfSeriousHarm
	err   error
	calls int
}

func (s *stubOasys) RiskOfSeriousHarm(_ context.Context, _, _ string) (client.OasysRiskOfSeriousHarm, error) {
	s.calls++
	return s.rosh, s.err
}

func roshApp(data application.Data) *application.Application {
	return &application.Application{
		ID:     "abc-123",
		Person: application.Person{CRN: "X320741", Name: "Roger Smith"},
		Data:   data,
	}
}

func TestInitializeFetchesOasysRecordOnFirstEntry(t *testing.T) {
	source := &stubOasys{
		rosh: client.OasysRiskOfSeriousHarm{
			DateStarted:   "2023-08-28T08:47:13Z",
			DateCompleted: "2023-08-29T09:21:04Z",
			Rosh: []client.OasysRoshQuestion{
				{QuestionNumber: "R10.1", Answer: "who is at risk"},
				{QuestionNumber: "R10.2", Answer: "nature of risk"},
				{QuestionNumber: "R10.5", Answer: "reducing factors"},
			},
		},
	}

	page, err := InitializeOasysImport(context.Background(), application.AnswerBag{}, roshApp(nil), "token", &form.Services{Oasys: source})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	imp, ok := page.(*OasysImport)
	if !ok {
		t.Fatalf("expected import page, got %T", page)
	}
	if !imp.HasOasysRecord() {
		t.Fatal("expected an importable record")
	}
	if imp.OasysStarted() != "28 August 2023" || imp.OasysCompleted() != "29 August 2023" {
		t.Fatalf("unexpected display dates %q / %q", imp.OasysStarted(), imp.OasysCompleted())
	}

	taskData := imp.TaskData()
	pages := taskData["risk-of-serious-harm"]
	if pages == nil {
		t.Fatal("expected importable task data")
	}
	riskToOthers, _ := pages["risk-to-others"].(map[string]any)
	if application.String(riskToOthers, "whoIsAtRisk") != "who is at risk" {
		t.Fatalf("R10.1 not mapped: %+v", riskToOthers)
	}
	if application.String(riskToOthers, "dateOfOasysImport") == "" {
		t.Fatal("imported page missing the import sentinel")
	}
	reducing, _ := pages["reducing-risk"].(map[string]any)
	if application.String(reducing, "factorsLikelyToReduceRisk") != "reducing factors" {
		t.Fatalf("R10.5 not mapped: %+v", reducing)
	}
	summary, _ := pages["summary"].(map[string]any)
	if application.String(summary, "status") != "retrieved" {
		t.Fatalf("summary page not stamped: %+v", summary)
	}
}

func TestInitializeTreatsMissingRecordAsNoRecord(t *testing.T) {
	source := &stubOasys{err: &client.Error{Status: http.StatusNotFound, Data: "no record"}}

	page, err := InitializeOasysImport(context.Background(), application.AnswerBag{}, roshApp(nil), "token", &form.Services{Oasys: source})
	if err != nil {
		t.Fatalf("a missing assessment must not error: %v", err)
	}
	imp := page.(*OasysImport)
	if imp.HasOasysRecord() {
		t.Fatal("expected no importable record")
	}
	if imp.TaskData() != nil {
		t.Fatalf("expected no task data, got %+v", imp.TaskData())
	}
}

func TestInitializePropagatesFetchFailures(t *testing.T) {
	source := &stubOasys{err: &client.Error{Status: http.StatusBadGateway, Data: "upstream down"}}

	_, err := InitializeOasysImport(context.Background(), application.AnswerBag{}, roshApp(nil), "token", &form.Services{Oasys: source})
	var cerr *client.Error
	if !errors.As(err, &cerr) || cerr.Status != http.StatusBadGateway {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestInitializeRoutesToSummaryAfterImport(t *testing.T) {
	source := &stubOasys{}
	data := application.Data{
		"risk-of-serious-harm": {
			"risk-to-others": map[string]any{
				"whoIsAtRisk":       "imported",
				"dateOfOasysImport": "2023-08-30T10:00:00Z",
			},
		},
	}

	page, err := InitializeOasysImport(context.Background(), application.AnswerBag{}, roshApp(data), "token", &form.Services{Oasys: source})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if _, ok := page.(*Summary); !ok {
		t.Fatalf("expected summary page, got %T", page)
	}
	if source.calls != 0 {
		t.Fatalf("stored data must not trigger a fetch, got %d calls", source.calls)
	}
}

func TestInitializeRoutesToRiskToOthersForManualData(t *testing.T) {
	source := &stubOasys{}
	data := application.Data{
		"risk-of-serious-harm": {
			"risk-to-others": map[string]any{"whoIsAtRisk": "typed by hand"},
		},
	}

	page, err := InitializeOasysImport(context.Background(), application.AnswerBag{}, roshApp(data), "token", &form.Services{Oasys: source})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	rto, ok := page.(*RiskToOthers)
	if !ok {
		t.Fatalf("expected risk-to-others page, got %T", page)
	}
	if application.String(rto.Body(), "whoIsAtRisk") != "typed by hand" {
		t.Fatalf("stored answers not carried into the page body: %+v", rto.Body())
	}
	if source.calls != 0 {
		t.Fatalf("stored data must not trigger a fetch, got %d calls", source.calls)
	}
}

func TestOasysImportOnSaveStampsVisit(t *testing.T) {
	page := NewOasysImport(application.AnswerBag{}, roshApp(nil), "").(*OasysImport)
	body := page.OnSave()
	if application.String(body, "oasysImportDate") == "" {
		t.Fatal("expected the save to stamp oasysImportDate")
	}
}
