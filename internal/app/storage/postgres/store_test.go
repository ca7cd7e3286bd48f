package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/app/storage"
)

func TestRecordSubmissionInserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	store := NewAuditStore(db)
	submittedAt := time.Date(2023, 8, 30, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO intake_submissions").
		WithArgs("sub-1", "abc-123", "X320741", submittedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.RecordSubmission(context.Background(), storage.SubmissionRecord{
		ID:            "sub-1",
		ApplicationID: "abc-123",
		CRN:           "X320741",
		SubmittedAt:   submittedAt,
		Answers: []application.AnswerEntry{
			{Task: "confirm-eligibility", Page: "confirm-eligibility", Question: "q", Answer: "a"},
		},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListSubmissionsDecodesAnswers(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	store := NewAuditStore(db)
	submittedAt := time.Date(2023, 8, 30, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "application_id", "crn", "submitted_at", "answers"}).
		AddRow("sub-1", "abc-123", "X320741", submittedAt,
			[]byte(`[{"task":"confirm-eligibility","page":"confirm-eligibility","question":"q","answer":"a"}]`))
	mock.ExpectQuery("SELECT id, application_id, crn, submitted_at, answers").
		WithArgs("X320741").
		WillReturnRows(rows)

	records, err := store.ListSubmissions(context.Background(), "X320741")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(records[0].Answers) != 1 || records[0].Answers[0].Answer != "a" {
		t.Fatalf("unexpected answers %+v", records[0].Answers)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
