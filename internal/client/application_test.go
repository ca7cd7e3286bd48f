package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/httputil"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ApplicationClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rest := httputil.NewClient(httputil.Config{BaseURL: srv.URL})
	return NewApplicationClient(rest, "some-token"), srv
}

func TestApplicationClientFind(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/applications/abc" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer some-token" {
			t.Fatalf("missing bearer token")
		}
		json.NewEncoder(w).Encode(application.Application{ID: "abc", Person: application.Person{Name: "Roger Smith"}})
	})

	app, err := c.Find(context.Background(), "abc")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if app.Person.Name != "Roger Smith" {
		t.Fatalf("unexpected person %+v", app.Person)
	}
}

func TestApplicationClientCreateTrimsCRN(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		json.NewDecoder(r.Body).Decode(&payload)
		if payload["crn"] != "X320741" {
			t.Fatalf("expected trimmed crn, got %q", payload["crn"])
		}
		json.NewEncoder(w).Encode(application.Application{ID: "new"})
	})

	if _, err := c.Create(context.Background(), "  X320741 "); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestApplicationClientNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such application", http.StatusNotFound)
	})

	_, err := c.Find(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestApplicationClientUpdateSendsWholeDocument(t *testing.T) {
	data := application.Data{
		"funding-information": {"funding-source": map[string]any{"fundingSource": "benefits"}},
	}

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Fatalf("expected PUT, got %s", r.Method)
		}
		var payload struct {
			Type string           `json:"type"`
			Data application.Data `json:"data"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		if payload.Type != "intake" {
			t.Fatalf("unexpected type %q", payload.Type)
		}
		if _, ok := payload.Data["funding-information"]; !ok {
			t.Fatalf("data document not forwarded: %+v", payload.Data)
		}
		json.NewEncoder(w).Encode(application.Application{ID: "abc", Data: payload.Data})
	})

	updated, err := c.Update(context.Background(), "abc", data)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Bag("funding-information", "funding-source") == nil {
		t.Fatalf("updated snapshot missing merged data")
	}
}
