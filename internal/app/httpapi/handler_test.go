package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/app/httpapi"
	"github.com/caseflow/intake_service/internal/app/services/applications"
	"github.com/caseflow/intake_service/internal/app/storage"
	"github.com/caseflow/intake_service/internal/app/storage/memory"
	"github.com/caseflow/intake_service/internal/form"
	"github.com/caseflow/intake_service/internal/form/apply"
)

type fakeAPI struct {
	app     application.Application
	updates []application.Data
}

func (f *fakeAPI) Find(_ context.Context, _ string) (application.Application, error) {
	return f.app, nil
}

func (f *fakeAPI) Create(_ context.Context, crn string) (application.Application, error) {
	return application.Application{ID: "new-id", Person: application.Person{CRN: crn}}, nil
}

func (f *fakeAPI) All(_ context.Context) ([]application.Application, error) {
	return []application.Application{f.app}, nil
}

func (f *fakeAPI) Update(_ context.Context, _ string, data application.Data) (application.Application, error) {
	f.updates = append(f.updates, data)
	f.app.Data = data
	return f.app, nil
}

func (f *fakeAPI) Submit(_ context.Context, _ string, _ application.Submission) error {
	return nil
}

func testServer(t *testing.T, api *fakeAPI) (*httptest.Server, storage.AuditStore) {
	t.Helper()
	audit := memory.NewAuditStore()
	svc := applications.New(apply.NewRegistry(), func(string) applications.API { return api }, &form.Services{}, audit, nil)
	handler := httpapi.New(svc, nil, audit, nil, nil)

	router := mux.NewRouter()
	handler.Routes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, audit
}

func storedApp() application.Application {
	return application.Application{
		ID:     "abc-123",
		Person: application.Person{CRN: "X320741", Name: "Roger Smith"},
		Data: application.Data{
			"confirm-eligibility": {
				"confirm-eligibility": map[string]any{"isEligible": "yes"},
			},
		},
	}
}

func TestGetPageReturnsResolvedView(t *testing.T) {
	srv, _ := testServer(t, &fakeAPI{app: storedApp()})

	resp, err := http.Get(srv.URL + "/applications/abc-123/tasks/confirm-eligibility/pages/confirm-eligibility")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Task string `json:"task"`
		Page struct {
			Name  string         `json:"name"`
			Title string         `json:"title"`
			Body  map[string]any `json:"body"`
		} `json:"page"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Page.Name != "confirm-eligibility" {
		t.Fatalf("unexpected page %+v", payload.Page)
	}
	if payload.Page.Body["isEligible"] != "yes" {
		t.Fatalf("stored answers not in body: %+v", payload.Page.Body)
	}
}

func TestSavePageValidationFailureReturns400(t *testing.T) {
	api := &fakeAPI{app: storedApp()}
	srv, _ := testServer(t, api)

	req, _ := http.NewRequest(http.MethodPut,
		srv.URL+"/applications/abc-123/tasks/funding-information/pages/funding-source",
		bytes.NewBufferString(`{}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var payload struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Errors["fundingSource"] == "" {
		t.Fatalf("expected field error, got %+v", payload.Errors)
	}
	if len(api.updates) != 0 {
		t.Fatalf("invalid save must not write, got %d updates", len(api.updates))
	}
}

func TestSavePagePersistsValidBody(t *testing.T) {
	api := &fakeAPI{app: storedApp()}
	srv, _ := testServer(t, api)

	req, _ := http.NewRequest(http.MethodPut,
		srv.URL+"/applications/abc-123/tasks/funding-information/pages/funding-source",
		bytes.NewBufferString(`{"fundingSource":"benefits"}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(api.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(api.updates))
	}
}

func TestAppendOffenceRecordValidates(t *testing.T) {
	api := &fakeAPI{app: storedApp()}
	srv, _ := testServer(t, api)
	url := srv.URL + "/applications/abc-123/tasks/offending-history/pages/offence-history/records"

	resp, err := http.Post(url, "application/json", bytes.NewBufferString(`{"titleAndNumber":"Stalking (08000)"}`))
	if err != nil {
		t.Fatalf("post record: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("incomplete record status = %d, want 400", resp.StatusCode)
	}

	full := `{
		"titleAndNumber": "Stalking (08000)",
		"offenceCategory": "stalkingOrHarassment",
		"offenceDate": "2022-06-05",
		"sentenceLength": "2 years",
		"summary": "summary detail"
	}`
	resp, err = http.Post(url, "application/json", bytes.NewBufferString(full))
	if err != nil {
		t.Fatalf("post record: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("valid record status = %d, want 201", resp.StatusCode)
	}
	if len(api.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(api.updates))
	}
}

func TestSubmitIncompleteApplicationReturns400(t *testing.T) {
	srv, _ := testServer(t, &fakeAPI{app: storedApp()})

	resp, err := http.Post(srv.URL+"/applications/abc-123/submission", "application/json", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestListSubmissionsReadsAuditTrail(t *testing.T) {
	srv, audit := testServer(t, &fakeAPI{app: storedApp()})
	err := audit.RecordSubmission(context.Background(), storage.SubmissionRecord{
		ID: "sub-1", ApplicationID: "abc-123", CRN: "X320741",
	})
	if err != nil {
		t.Fatalf("seed audit: %v", err)
	}

	resp, err := http.Get(srv.URL + "/people/X320741/submissions")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer resp.Body.Close()

	var records []storage.SubmissionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].ID != "sub-1" {
		t.Fatalf("unexpected records %+v", records)
	}
}
