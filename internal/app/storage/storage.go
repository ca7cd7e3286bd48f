// Package storage defines the audit trail persistence contract. The wizard
// does not own the application document, so the only local state worth
// keeping is a record of what was submitted and when.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/caseflow/intake_service/internal/app/domain/application"
)

// ErrNotFound is returned when no submission exists for the given key.
var ErrNotFound = errors.New("submission not found")

// SubmissionRecord is one audited submission: who it was about, when it
// went out, and the flattened answers as sent.
type SubmissionRecord struct {
	ID            string                    `json:"id"`
	ApplicationID string                    `json:"applicationId"`
	CRN           string                    `json:"crn"`
	SubmittedAt   time.Time                 `json:"submittedAt"`
	Answers       []application.AnswerEntry `json:"answers"`
}

// AuditStore persists submission records.
type AuditStore interface {
	RecordSubmission(ctx context.Context, rec SubmissionRecord) error
	ListSubmissions(ctx context.Context, crn string) ([]SubmissionRecord, error)
}
