// Package memory implements the audit store in process memory, for tests
// and for deployments that run without Postgres.
package memory

import (
	"context"
	"sync"

	"github.com/caseflow/intake_service/internal/app/storage"
)

// AuditStore keeps submission records in a slice guarded by a mutex.
type AuditStore struct {
	mu      sync.RWMutex
	records []storage.SubmissionRecord
}

// NewAuditStore creates an empty in-memory audit store.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// RecordSubmission appends the record.
func (s *AuditStore) RecordSubmission(_ context.Context, rec storage.SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

// ListSubmissions returns the records for one CRN in insertion order.
func (s *AuditStore) ListSubmissions(_ context.Context, crn string) ([]storage.SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]storage.SubmissionRecord, 0)
	for _, rec := range s.records {
		if rec.CRN == crn {
			out = append(out, rec)
		}
	}
	return out, nil
}

var _ storage.AuditStore = (*AuditStore)(nil)
