// Package postgres implements the audit store on PostgreSQL. Answers are
// stored as a JSONB document alongside the submission key columns.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/caseflow/intake_service/internal/app/storage"
)

// AuditStore persists submission records in the intake_submissions table.
type AuditStore struct {
	db *sql.DB
}

// Open connects to Postgres with the given DSN and verifies the connection.
func Open(dsn string) (*AuditStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &AuditStore{db: db}, nil
}

// NewAuditStore wraps an existing connection, used by tests.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Migrate creates the submissions table when it does not exist.
func (s *AuditStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS intake_submissions (
			id             TEXT PRIMARY KEY,
			application_id TEXT NOT NULL,
			crn            TEXT NOT NULL,
			submitted_at   TIMESTAMPTZ NOT NULL,
			answers        JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate intake_submissions: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *AuditStore) Close() error {
	return s.db.Close()
}

// RecordSubmission inserts the record.
func (s *AuditStore) RecordSubmission(ctx context.Context, rec storage.SubmissionRecord) error {
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO intake_submissions (id, application_id, crn, submitted_at, answers)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.ApplicationID, rec.CRN, rec.SubmittedAt, answers)
	if err != nil {
		return fmt.Errorf("insert submission %s: %w", rec.ID, err)
	}
	return nil
}

// ListSubmissions returns the records for one CRN ordered by submission
// time.
func (s *AuditStore) ListSubmissions(ctx context.Context, crn string) ([]storage.SubmissionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, application_id, crn, submitted_at, answers
		 FROM intake_submissions WHERE crn = $1 ORDER BY submitted_at`,
		crn)
	if err != nil {
		return nil, fmt.Errorf("list submissions for %s: %w", crn, err)
	}
	defer rows.Close()

	var out []storage.SubmissionRecord
	for rows.Next() {
		var rec storage.SubmissionRecord
		var answers []byte
		if err := rows.Scan(&rec.ID, &rec.ApplicationID, &rec.CRN, &rec.SubmittedAt, &answers); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if len(answers) > 0 {
			if err := json.Unmarshal(answers, &rec.Answers); err != nil {
				return nil, fmt.Errorf("decode answers for %s: %w", rec.ID, err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ storage.AuditStore = (*AuditStore)(nil)
