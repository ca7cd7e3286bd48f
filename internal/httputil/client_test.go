package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL})
	resp, err := c.Post(context.Background(), "some-token", "/things", map[string]string{"a": "b"})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer some-token" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected json content type, got %q", gotContentType)
	}
}

func TestReadAllWithLimit(t *testing.T) {
	data, truncated, err := ReadAllWithLimit(strings.NewReader("hello world"), 5)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !truncated {
		t.Fatalf("expected truncation")
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected data %q", data)
	}
}
