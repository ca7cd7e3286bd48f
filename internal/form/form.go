// Package form implements the form wizard engine: the section/task/page
// schema registry, the per-page behavioral contract, task completion
// evaluation, and the check-your-answers projection.
package form

import (
	"context"
	"errors"
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/client"
)

var (
	// ErrTaskNotFound is returned when a task slug is not registered.
	ErrTaskNotFound = errors.New("task not found")
	// ErrPageNotFound is returned when a page name is not registered in the
	// owning task.
	ErrPageNotFound = errors.New("page not found")
)

// Page is one screen's worth of questions: the atomic unit of validation,
// persistence, and navigation. Errors must be pure in the page's body and
// application snapshot; Response must never contain empty answers.
type Page interface {
	Name() string
	Title() string
	Body() application.AnswerBag
	Previous() string
	// Next returns the following page's name, or "" at the end of the task.
	Next() string
	Errors() map[string]string
	Response() map[string]string
}

// OnSaver is implemented by pages that drop answers made irrelevant by the
// rest of the body (detail fields attached to a "no") before persistence.
// OnSave returns the body to store; it never mutates the page.
type OnSaver interface {
	OnSave() application.AnswerBag
}

// OasysSource fetches risk assessment data for a person. A missing record
// must surface as a not-found error distinguishable from other failures.
type OasysSource interface {
	RiskOfSeriousHarm(ctx context.Context, token, crn string) (client.OasysRiskOfSeriousHarm, error)
}

// Services carries the external data services available to page Initialize
// hooks.
type Services struct {
	Oasys OasysSource
}

// Constructor builds a page from a body, an application snapshot, and the
// previous page name recorded in the session.
type Constructor func(body application.AnswerBag, app *application.Application, previousPage string) Page

// Initializer is the optional asynchronous entry hook for a page. It may
// return a different, downstream page based on stored data or external
// lookups (auto-routing).
type Initializer func(ctx context.Context, body application.AnswerBag, app *application.Application, token string, services *Services) (Page, error)

// PageSpec declares one page of a task's chain.
type PageSpec struct {
	Name       string
	New        Constructor
	Initialize Initializer
}

// Task is a named unit of work composed of an ordered page chain. DependsOn
// lists task slugs that must be complete before this task can start.
type Task struct {
	Slug      string
	Name      string
	Pages     []PageSpec
	DependsOn []string
}

// Section is a display grouping of tasks. It carries no navigation
// semantics.
type Section struct {
	Title string
	Tasks []Task
}

// Registry is the immutable section/task/page schema, built once at process
// start and injected wherever the wizard needs it.
type Registry struct {
	sections []Section
	tasks    map[string]Task
	pages    map[string]map[string]PageSpec
}

// NewRegistry builds a registry from the given sections.
func NewRegistry(sections ...Section) *Registry {
	r := &Registry{
		sections: sections,
		tasks:    make(map[string]Task),
		pages:    make(map[string]map[string]PageSpec),
	}
	for _, section := range sections {
		for _, task := range section.Tasks {
			r.tasks[task.Slug] = task
			index := make(map[string]PageSpec, len(task.Pages))
			for _, page := range task.Pages {
				index[page.Name] = page
			}
			r.pages[task.Slug] = index
		}
	}
	return r
}

// Sections returns the display grouping in declaration order.
func (r *Registry) Sections() []Section {
	return r.sections
}

// Task returns the task registered under slug.
func (r *Registry) Task(slug string) (Task, error) {
	task, ok := r.tasks[slug]
	if !ok {
		return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, slug)
	}
	return task, nil
}

// PageSpec returns the page registered under (task, page).
func (r *Registry) PageSpec(taskSlug, pageName string) (PageSpec, error) {
	index, ok := r.pages[taskSlug]
	if !ok {
		return PageSpec{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskSlug)
	}
	spec, ok := index[pageName]
	if !ok {
		return PageSpec{}, fmt.Errorf("%w: %s/%s", ErrPageNotFound, taskSlug, pageName)
	}
	return spec, nil
}
