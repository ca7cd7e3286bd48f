// Package applications orchestrates the form wizard over the external
// application store: page resolution, the merge and persist protocol,
// submission, and the audit trail.
package applications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/app/storage"
	"github.com/caseflow/intake_service/internal/form"
	"github.com/caseflow/intake_service/pkg/logger"
)

// API is the slice of the application store the service needs. The real
// implementation is client.ApplicationClient.
type API interface {
	Find(ctx context.Context, id string) (application.Application, error)
	Create(ctx context.Context, crn string) (application.Application, error)
	All(ctx context.Context) ([]application.Application, error)
	Update(ctx context.Context, id string, data application.Data) (application.Application, error)
	Submit(ctx context.Context, id string, payload application.Submission) error
}

// ClientFactory builds a store client bound to the caller's token, so every
// upstream call carries the signed-in user's identity.
type ClientFactory func(token string) API

// ValidationError carries per-field messages for a page the applicant has
// not completed correctly. It is the only error the HTTP layer maps to 400.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d fields", len(e.Errors))
}

// Grouped splits a user's applications for the dashboard view.
type Grouped struct {
	InProgress []application.Application `json:"inProgress"`
	Submitted  []application.Application `json:"submitted"`
}

// Service is the wizard orchestrator.
type Service struct {
	registry *form.Registry
	clients  ClientFactory
	services *form.Services
	audit    storage.AuditStore
	log      *logger.Logger
}

// New creates the orchestrator.
func New(registry *form.Registry, clients ClientFactory, services *form.Services, audit storage.AuditStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("applications")
	}
	return &Service{
		registry: registry,
		clients:  clients,
		services: services,
		audit:    audit,
		log:      log,
	}
}

// Registry exposes the form schema for read-only projections.
func (s *Service) Registry() *form.Registry { return s.registry }

// Find fetches one application snapshot.
func (s *Service) Find(ctx context.Context, token, id string) (application.Application, error) {
	return s.clients(token).Find(ctx, id)
}

// Create starts a new application for the person identified by crn.
func (s *Service) Create(ctx context.Context, token, crn string) (application.Application, error) {
	app, err := s.clients(token).Create(ctx, crn)
	if err != nil {
		return application.Application{}, err
	}
	s.log.WithField("application_id", app.ID).Info("application created")
	return app, nil
}

// GroupedForUser lists the caller's applications split by submission state.
func (s *Service) GroupedForUser(ctx context.Context, token string) (Grouped, error) {
	apps, err := s.clients(token).All(ctx)
	if err != nil {
		return Grouped{}, err
	}
	grouped := Grouped{
		InProgress: []application.Application{},
		Submitted:  []application.Application{},
	}
	for _, app := range apps {
		if app.SubmittedAt != nil {
			grouped.Submitted = append(grouped.Submitted, app)
			continue
		}
		grouped.InProgress = append(grouped.InProgress, app)
	}
	return grouped, nil
}

// ResolvePage builds the page to display for (task, page). The body follows
// the precedence request body, then user input, then stored answers, then
// empty. Pages with an Initialize hook may resolve to a downstream page
// based on stored data or external lookups.
func (s *Service) ResolvePage(ctx context.Context, token string, app *application.Application, taskSlug, pageName string, requestBody, userInput application.AnswerBag, previousPage string) (form.Page, error) {
	spec, err := s.registry.PageSpec(taskSlug, pageName)
	if err != nil {
		return nil, err
	}

	body := resolveBody(app, taskSlug, pageName, requestBody, userInput)
	if spec.Initialize != nil {
		return spec.Initialize(ctx, body, app, token, s.services)
	}
	return spec.New(body, app, previousPage), nil
}

// Save validates the page and, when clean, merges its sub-record into the
// data document and writes the whole document back. The merge overwrites
// the page's previous sub-record and touches nothing else.
func (s *Service) Save(ctx context.Context, token string, app *application.Application, taskSlug string, page form.Page) (application.Application, error) {
	body := page.Body()
	if saver, ok := page.(form.OnSaver); ok {
		body = saver.OnSave()
	}

	spec, err := s.registry.PageSpec(taskSlug, page.Name())
	if err != nil {
		return application.Application{}, err
	}
	// Revalidate against the body that will actually be stored.
	if errs := spec.New(body, app, "").Errors(); len(errs) > 0 {
		return application.Application{}, &ValidationError{Errors: errs}
	}

	data := app.Data.Clone()
	if data == nil {
		data = application.Data{}
	}
	if data[taskSlug] == nil {
		data[taskSlug] = map[string]any{}
	}
	data[taskSlug][page.Name()] = body

	updated, err := s.clients(token).Update(ctx, app.ID, data)
	if err != nil {
		return application.Application{}, err
	}
	s.log.WithField("application_id", app.ID).
		WithField("task", taskSlug).
		WithField("page", page.Name()).
		Debug("page saved")
	return updated, nil
}

// SaveData merges whole pre-computed page values into the document, used by
// the OASys import confirmation to write several pages in one update.
func (s *Service) SaveData(ctx context.Context, token string, app *application.Application, patch application.Data) (application.Application, error) {
	data := app.Data.Clone()
	if data == nil {
		data = application.Data{}
	}
	for task, pages := range patch {
		if data[task] == nil {
			data[task] = map[string]any{}
		}
		for page, raw := range pages {
			data[task][page] = raw
		}
	}
	return s.clients(token).Update(ctx, app.ID, data)
}

// AppendRecord appends one sub-record to a repeating-group page's stored
// list.
func (s *Service) AppendRecord(ctx context.Context, token string, app *application.Application, taskSlug, pageName string, record application.AnswerBag) (application.Application, error) {
	data := app.Data.Clone()
	if data == nil {
		data = application.Data{}
	}
	if data[taskSlug] == nil {
		data[taskSlug] = map[string]any{}
	}
	records := application.Records(data[taskSlug][pageName])
	records = append(records, record)
	list := make([]any, 0, len(records))
	for _, rec := range records {
		list = append(list, rec)
	}
	data[taskSlug][pageName] = list

	return s.clients(token).Update(ctx, app.ID, data)
}

// RemoveRecord deletes the sub-record at index from a repeating-group
// page's stored list.
func (s *Service) RemoveRecord(ctx context.Context, token string, app *application.Application, taskSlug, pageName string, index int) (application.Application, error) {
	data := app.Data.Clone()
	records := application.Records(data[taskSlug][pageName])
	if index < 0 || index >= len(records) {
		return application.Application{}, &ValidationError{Errors: map[string]string{
			"record": "No record exists at that position",
		}}
	}
	records = append(records[:index], records[index+1:]...)
	list := make([]any, 0, len(records))
	for _, rec := range records {
		list = append(list, rec)
	}
	data[taskSlug][pageName] = list

	return s.clients(token).Update(ctx, app.ID, data)
}

// TaskList derives the task-list projection for the application.
func (s *Service) TaskList(app *application.Application) ([]form.SectionWithStatuses, error) {
	return s.registry.TaskList(app)
}

// CheckYourAnswers builds the review projection.
func (s *Service) CheckYourAnswers(app *application.Application) []form.ReviewTask {
	return s.registry.CheckYourAnswers(app)
}

// Submit sends the terminal submission and records it in the audit trail.
// Every task must be complete first.
func (s *Service) Submit(ctx context.Context, token string, app *application.Application) error {
	sections, err := s.registry.TaskList(app)
	if err != nil {
		return err
	}
	for _, section := range sections {
		for _, task := range section.Tasks {
			if task.Status != form.TaskStatusComplete {
				return &ValidationError{Errors: map[string]string{
					task.Slug: fmt.Sprintf("Complete the %q task before submitting", task.Name),
				}}
			}
		}
	}

	entries := s.registry.FlattenAnswers(app)
	payload := application.Submission{
		ApplicationID:      app.ID,
		Data:               app.Data,
		TranslatedDocument: entries,
	}
	if err := s.clients(token).Submit(ctx, app.ID, payload); err != nil {
		return err
	}

	if s.audit != nil {
		rec := storage.SubmissionRecord{
			ID:            uuid.NewString(),
			ApplicationID: app.ID,
			CRN:           app.Person.CRN,
			SubmittedAt:   time.Now().UTC(),
			Answers:       entries,
		}
		// The upstream submission already succeeded; an audit failure is
		// logged rather than surfaced.
		if err := s.audit.RecordSubmission(ctx, rec); err != nil {
			s.log.WithError(err).WithField("application_id", app.ID).Error("audit write failed")
		}
	}

	s.log.WithField("application_id", app.ID).Info("application submitted")
	return nil
}

// resolveBody picks the page body by precedence: request body, then user
// input, then the stored sub-record, then empty.
func resolveBody(app *application.Application, taskSlug, pageName string, requestBody, userInput application.AnswerBag) application.AnswerBag {
	if len(requestBody) > 0 {
		return requestBody
	}
	if len(userInput) > 0 {
		return userInput
	}
	return app.BagOrEmpty(taskSlug, pageName)
}
