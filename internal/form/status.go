package form

import (
	"fmt"

	"github.com/caseflow/intake_service/internal/app/domain/application"
)

// TaskStatus is the derived completion state of a task. It is recomputed
// from stored data on every read and never persisted.
type TaskStatus string

const (
	TaskStatusNotStarted  TaskStatus = "notStarted"
	TaskStatusInProgress  TaskStatus = "inProgress"
	TaskStatusComplete    TaskStatus = "complete"
	TaskStatusCannotStart TaskStatus = "cannotStart"
)

// TaskWithStatus pairs a task with its derived status for task-list
// projections.
type TaskWithStatus struct {
	Slug   string     `json:"slug"`
	Name   string     `json:"name"`
	Status TaskStatus `json:"status"`
}

// SectionWithStatuses is a read-only projection of one section of the task
// list.
type SectionWithStatuses struct {
	Title string           `json:"title"`
	Tasks []TaskWithStatus `json:"tasks"`
}

// TaskStatus derives the completion state of the task registered under slug.
// The task is complete when every page reached by walking the chain from the
// first page, following each reconstructed page's Next, has a non-empty
// stored answer bag and no validation errors.
func (r *Registry) TaskStatus(slug string, app *application.Application) (TaskStatus, error) {
	task, err := r.Task(slug)
	if err != nil {
		return "", err
	}
	if len(task.Pages) == 0 {
		return TaskStatusNotStarted, fmt.Errorf("task %s has no pages", slug)
	}

	// A fresh application reports every task as not started, before any
	// dependency ordering applies.
	if app == nil || len(app.Data) == 0 {
		return TaskStatusNotStarted, nil
	}

	for _, dep := range task.DependsOn {
		depStatus, err := r.TaskStatus(dep, app)
		if err != nil {
			return "", err
		}
		if depStatus != TaskStatusComplete {
			return TaskStatusCannotStart, nil
		}
	}

	pageName := task.Pages[0].Name
	visited := make(map[string]bool)
	answered := 0

	for {
		if visited[pageName] {
			// A navigation cycle would loop forever; report the task as
			// still in progress rather than walking it again.
			return TaskStatusInProgress, nil
		}
		visited[pageName] = true

		raw, ok := app.PageValue(task.Slug, pageName)
		if !ok || !pageAnswered(raw) {
			if answered == 0 {
				return TaskStatusNotStarted, nil
			}
			return TaskStatusInProgress, nil
		}
		answered++

		spec, err := r.PageSpec(task.Slug, pageName)
		if err != nil {
			return "", err
		}
		bag, _ := raw.(map[string]any)
		if bag == nil {
			// Repeating-group pages store a record list; reconstruct with an
			// empty body, the page reads its records from the application.
			bag = application.AnswerBag{}
		}
		page := spec.New(bag, app, "")
		if len(page.Errors()) > 0 {
			return TaskStatusInProgress, nil
		}

		next := page.Next()
		if next == "" {
			return TaskStatusComplete, nil
		}
		pageName = next
	}
}

// TaskList derives the full task-list projection, section by section.
func (r *Registry) TaskList(app *application.Application) ([]SectionWithStatuses, error) {
	out := make([]SectionWithStatuses, 0, len(r.sections))
	for _, section := range r.sections {
		proj := SectionWithStatuses{Title: section.Title}
		for _, task := range section.Tasks {
			status, err := r.TaskStatus(task.Slug, app)
			if err != nil {
				return nil, err
			}
			proj.Tasks = append(proj.Tasks, TaskWithStatus{Slug: task.Slug, Name: task.Name, Status: status})
		}
		out = append(out, proj)
	}
	return out, nil
}

func pageAnswered(raw any) bool {
	switch val := raw.(type) {
	case map[string]any:
		return len(val) > 0
	case []any:
		return len(val) > 0
	case []application.AnswerBag:
		return len(val) > 0
	default:
		return false
	}
}
