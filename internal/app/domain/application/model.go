// Package application defines the intake application document owned by the
// external application store. The wizard only reads snapshots of it and
// writes back merged replacements.
package application

import "time"

// Person identifies the applicant an application is about.
type Person struct {
	CRN        string `json:"crn"`
	Name       string `json:"name"`
	NomsNumber string `json:"nomsNumber,omitempty"`
}

// AnswerBag is the field-to-value sub-record stored for one (task, page)
// pair. Values are strings, string lists, or lists of sub-records for
// repeating groups.
type AnswerBag = map[string]any

// Data maps task slug to page name to that page's stored value. A page value
// is normally an AnswerBag; repeating-group pages store a list of records.
type Data map[string]map[string]any

// Application is a snapshot of the remote application record. Data is nil
// for a freshly created application.
type Application struct {
	ID          string     `json:"id"`
	Person      Person     `json:"person"`
	CreatedAt   time.Time  `json:"createdAt"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Status      string     `json:"status,omitempty"`
	Data        Data       `json:"data"`
}

// Submission is the terminal payload sent to the external store. The store
// rejects writes after a successful submission.
type Submission struct {
	ApplicationID      string        `json:"applicationId"`
	Data               Data          `json:"data"`
	TranslatedDocument []AnswerEntry `json:"translatedDocument"`
}

// AnswerEntry is one flattened question and answer in the submission
// document and the audit trail.
type AnswerEntry struct {
	Task     string `json:"task"`
	Page     string `json:"page"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Bag returns the answer bag stored for (task, page), or nil when absent or
// when the stored value is a repeating-group list.
func (a *Application) Bag(task, page string) AnswerBag {
	raw, ok := a.PageValue(task, page)
	if !ok {
		return nil
	}
	bag, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return bag
}

// BagOrEmpty returns the stored answer bag for (task, page), or an empty bag.
func (a *Application) BagOrEmpty(task, page string) AnswerBag {
	if bag := a.Bag(task, page); bag != nil {
		return bag
	}
	return AnswerBag{}
}

// PageValue returns the raw stored value for (task, page).
func (a *Application) PageValue(task, page string) (any, bool) {
	if a == nil || a.Data == nil {
		return nil, false
	}
	pages, ok := a.Data[task]
	if !ok {
		return nil, false
	}
	raw, ok := pages[page]
	return raw, ok
}

// Clone deep-copies the data document so a merge never aliases the snapshot.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for task, pages := range d {
		cp := make(map[string]any, len(pages))
		for page, raw := range pages {
			cp[page] = cloneValue(raw)
		}
		out[task] = cp
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		cp := make(map[string]any, len(val))
		for k, item := range val {
			cp[k] = cloneValue(item)
		}
		return cp
	case []any:
		cp := make([]any, len(val))
		for i, item := range val {
			cp[i] = cloneValue(item)
		}
		return cp
	case []string:
		cp := make([]string, len(val))
		copy(cp, val)
		return cp
	default:
		return val
	}
}

// String reads a string field from an answer bag, returning "" when the
// field is absent or not a string.
func String(bag AnswerBag, field string) string {
	if bag == nil {
		return ""
	}
	s, _ := bag[field].(string)
	return s
}

// Strings reads a string-list field from an answer bag. Stored JSON decodes
// lists as []any, so both representations are accepted.
func Strings(bag AnswerBag, field string) []string {
	if bag == nil {
		return nil
	}
	switch val := bag[field].(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Records reads a repeating-group page value as a list of sub-records.
func Records(raw any) []AnswerBag {
	switch val := raw.(type) {
	case []AnswerBag:
		return val
	case []any:
		out := make([]AnswerBag, 0, len(val))
		for _, item := range val {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	default:
		return nil
	}
}
