package form

import (
	"strings"

	"github.com/caseflow/intake_service/internal/app/domain/application"
)

// NameOrPlaceholder returns the person's name, or neutral copy when the
// record carries none.
func NameOrPlaceholder(person application.Person) string {
	if person.Name == "" {
		return "the person"
	}
	return person.Name
}

// SentenceCase upper-cases the first letter of a raw answer value, so "yes"
// renders as "Yes".
func SentenceCase(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}

// PruneResponse drops entries with empty answers so review projections never
// render blank rows.
func PruneResponse(response map[string]string) map[string]string {
	for question, answer := range response {
		if answer == "" {
			delete(response, question)
		}
	}
	return response
}

// CopyBag shallow-copies an answer bag; OnSave implementations use it to
// return a trimmed body without mutating the page.
func CopyBag(bag application.AnswerBag) application.AnswerBag {
	out := make(application.AnswerBag, len(bag))
	for k, v := range bag {
		out[k] = v
	}
	return out
}
