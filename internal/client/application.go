package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/httputil"
)

const maxResponseBytes = 8 << 20

// ApplicationClient talks to the external application store with the
// caller's token. Build one per request via a factory so the upstream always
// sees the signed-in user's identity.
type ApplicationClient struct {
	rest  *httputil.Client
	token string
}

// NewApplicationClient creates a store client bound to a bearer token.
func NewApplicationClient(rest *httputil.Client, token string) *ApplicationClient {
	return &ApplicationClient{rest: rest, token: token}
}

// Find fetches a single application snapshot.
func (c *ApplicationClient) Find(ctx context.Context, id string) (application.Application, error) {
	resp, err := c.rest.Get(ctx, c.token, "/applications/"+id)
	if err != nil {
		return application.Application{}, fmt.Errorf("find application: %w", err)
	}
	var app application.Application
	if err := decode(resp, &app); err != nil {
		return application.Application{}, err
	}
	return app, nil
}

// Create creates a fresh application for the person identified by crn.
func (c *ApplicationClient) Create(ctx context.Context, crn string) (application.Application, error) {
	payload := map[string]string{"crn": strings.TrimSpace(crn)}
	resp, err := c.rest.Post(ctx, c.token, "/applications", payload)
	if err != nil {
		return application.Application{}, fmt.Errorf("create application: %w", err)
	}
	var app application.Application
	if err := decode(resp, &app); err != nil {
		return application.Application{}, err
	}
	return app, nil
}

// All lists the caller's applications.
func (c *ApplicationClient) All(ctx context.Context) ([]application.Application, error) {
	resp, err := c.rest.Get(ctx, c.token, "/applications")
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	var apps []application.Application
	if err := decode(resp, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Update replaces the application's full data document. The store treats
// this as a whole-document write; concurrent editors are last-write-wins.
func (c *ApplicationClient) Update(ctx context.Context, id string, data application.Data) (application.Application, error) {
	payload := map[string]any{"type": "intake", "data": data}
	resp, err := c.rest.Put(ctx, c.token, "/applications/"+id, payload)
	if err != nil {
		return application.Application{}, fmt.Errorf("update application: %w", err)
	}
	var app application.Application
	if err := decode(resp, &app); err != nil {
		return application.Application{}, err
	}
	return app, nil
}

// Submit issues the terminal submission call. The store rejects any write
// that follows a successful submission.
func (c *ApplicationClient) Submit(ctx context.Context, id string, payload application.Submission) error {
	resp, err := c.rest.Post(ctx, c.token, "/applications/"+id+"/submissions", payload)
	if err != nil {
		return fmt.Errorf("submit application: %w", err)
	}
	return decode(resp, nil)
}

// decode reads a JSON response into target, translating non-2xx statuses
// into *Error values so callers can distinguish a 404 from other failures.
func decode(resp *http.Response, target any) error {
	defer resp.Body.Close()

	body, truncated, err := httputil.ReadAllWithLimit(resp.Body, maxResponseBytes)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if truncated {
		return fmt.Errorf("response body exceeded %d bytes", maxResponseBytes)
	}

	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Data: strings.TrimSpace(string(body))}
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
