package form

import (
	"sort"
	"strings"

	"github.com/caseflow/intake_service/internal/app/domain/application"
)

// ReviewRow is one question/answer pair in the check-your-answers
// projection. Records is set instead of Answer for repeating-group pages.
// ChangeHref links back to the exact (task, page) that produced the answer.
type ReviewRow struct {
	Question   string                  `json:"question"`
	Answer     string                  `json:"answer,omitempty"`
	Records    []application.AnswerBag `json:"records,omitempty"`
	ChangeHref string                  `json:"changeHref"`
}

// ReviewTask groups the review rows of one task.
type ReviewTask struct {
	Slug string      `json:"slug"`
	Name string      `json:"name"`
	Rows []ReviewRow `json:"rows"`
}

// GetAnswer resolves the display answer for one stored field. The key "0"
// addresses the whole stored page value (the record list of a repeating
// group) and returns it verbatim; string lists are label-mapped and joined
// with commas; scalar values are label-mapped where the catalogue defines
// answers.
func GetAnswer(app *application.Application, questions Catalogue, task, page, field string) any {
	if field == "0" {
		raw, _ := app.PageValue(task, page)
		return application.Records(raw)
	}

	bag := app.Bag(task, page)
	if bag == nil {
		return ""
	}
	if list := application.Strings(bag, field); list != nil {
		return arrayAnswersAsString(list, questions.Question(task, page, field))
	}
	value := application.String(bag, field)
	if value == "" {
		return ""
	}
	q := questions.Question(task, page, field)
	if label, ok := q.Answers[value]; ok {
		return label
	}
	return value
}

// CheckYourAnswers builds the ordered review projection for every task with
// stored answers, walking the registry's declaration order.
func (r *Registry) CheckYourAnswers(app *application.Application) []ReviewTask {
	personName := NameOrPlaceholder(app.Person)
	_ = Questions(personName)

	var out []ReviewTask
	for _, section := range r.sections {
		for _, task := range section.Tasks {
			review := ReviewTask{Slug: task.Slug, Name: task.Name}
			for _, spec := range task.Pages {
				raw, ok := app.PageValue(task.Slug, spec.Name)
				if !ok || !pageAnswered(raw) {
					continue
				}
				href := changeHref(app.ID, task.Slug, spec.Name)

				if bag, isBag := raw.(map[string]any); isBag {
					page := spec.New(bag, app, "")
					response := page.Response()
					questionTexts := make([]string, 0, len(response))
					for question := range response {
						questionTexts = append(questionTexts, question)
					}
					sort.Strings(questionTexts)
					for _, question := range questionTexts {
						review.Rows = append(review.Rows, ReviewRow{
							Question:   question,
							Answer:     response[question],
							ChangeHref: href,
						})
					}
					continue
				}

				records := application.Records(raw)
				if len(records) == 0 {
					continue
				}
				review.Rows = append(review.Rows, ReviewRow{
					Question:   task.Name,
					Records:    records,
					ChangeHref: href,
				})
			}
			if len(review.Rows) > 0 {
				out = append(out, review)
			}
		}
	}
	return out
}

// FlattenAnswers converts the review projection into the flat entry list
// used for the submission document and the audit trail.
func (r *Registry) FlattenAnswers(app *application.Application) []application.AnswerEntry {
	var out []application.AnswerEntry
	for _, task := range r.CheckYourAnswers(app) {
		for _, row := range task.Rows {
			entry := application.AnswerEntry{
				Task:     task.Slug,
				Page:     pageFromHref(row.ChangeHref),
				Question: row.Question,
				Answer:   row.Answer,
			}
			if len(row.Records) > 0 {
				entry.Answer = recordsAsString(row.Records)
			}
			out = append(out, entry)
		}
	}
	return out
}

func arrayAnswersAsString(values []string, q Question) string {
	labels := make([]string, 0, len(values))
	for _, v := range values {
		if label, ok := q.Answers[v]; ok {
			labels = append(labels, label)
			continue
		}
		labels = append(labels, v)
	}
	return strings.Join(labels, ",")
}

func recordsAsString(records []application.AnswerBag) string {
	parts := make([]string, 0, len(records))
	for _, rec := range records {
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]string, 0, len(keys))
		for _, k := range keys {
			if s, ok := rec[k].(string); ok && s != "" {
				fields = append(fields, k+": "+s)
			}
		}
		parts = append(parts, strings.Join(fields, ", "))
	}
	return strings.Join(parts, "; ")
}

func changeHref(applicationID, task, page string) string {
	return "/applications/" + applicationID + "/tasks/" + task + "/pages/" + page
}

func pageFromHref(href string) string {
	idx := strings.LastIndex(href, "/")
	if idx < 0 {
		return href
	}
	return href[idx+1:]
}
