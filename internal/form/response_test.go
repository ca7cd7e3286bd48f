package form

import (
	"reflect"
	"testing"

	"github.com/caseflow/intake_service/internal/app/domain/application"
)

func reviewApp() *application.Application {
	return &application.Application{
		ID:     "abc-123",
		Person: application.Person{CRN: "X320741", Name: "Roger Smith"},
		Data: application.Data{
			"confirm-eligibility": {
				"confirm-eligibility": map[string]any{"isEligible": "yes"},
			},
			"offending-history": {
				"offence-history": []any{
					map[string]any{"titleAndNumber": "Stalking (08000)", "offenceCategory": "stalkingOrHarassment"},
				},
			},
		},
	}
}

func TestGetAnswerMapsScalarLabels(t *testing.T) {
	app := reviewApp()
	questions := Questions("Roger Smith")

	got := GetAnswer(app, questions, "confirm-eligibility", "confirm-eligibility", "isEligible")
	if got != "Yes, I confirm Roger Smith is eligible" {
		t.Fatalf("unexpected answer %q", got)
	}
}

func TestGetAnswerJoinsArrayAnswers(t *testing.T) {
	app := &application.Application{
		ID:     "abc-123",
		Person: application.Person{Name: "Roger Smith"},
		Data: application.Data{
			"risk-of-serious-harm": {
				"risk-management-arrangements": map[string]any{
					"arrangements": []any{"mappa", "marac"},
				},
			},
		},
	}

	got := GetAnswer(app, Questions("Roger Smith"), "risk-of-serious-harm", "risk-management-arrangements", "arrangements")
	if got != "MAPPA,MARAC" {
		t.Fatalf("unexpected joined answer %q", got)
	}
}

func TestGetAnswerZeroKeyReturnsRecordsVerbatim(t *testing.T) {
	app := reviewApp()

	got := GetAnswer(app, Questions("Roger Smith"), "offending-history", "offence-history", "0")
	records, ok := got.([]application.AnswerBag)
	if !ok {
		t.Fatalf("expected record list, got %T", got)
	}
	want := []application.AnswerBag{
		{"titleAndNumber": "Stalking (08000)", "offenceCategory": "stalkingOrHarassment"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records = %+v, want %+v", records, want)
	}
}

func TestGetAnswerUnansweredFieldIsEmpty(t *testing.T) {
	app := reviewApp()
	if got := GetAnswer(app, Questions("Roger Smith"), "funding-information", "funding-source", "fundingSource"); got != "" {
		t.Fatalf("expected empty answer, got %q", got)
	}
}

type echoPage struct {
	stubPage
	question string
}

func (p *echoPage) Response() map[string]string {
	return map[string]string{p.question: application.String(p.body, "value")}
}

func echoRegistry() *Registry {
	return NewRegistry(Section{
		Title: "Test",
		Tasks: []Task{
			{
				Slug: "echo-task",
				Name: "Echo task",
				Pages: []PageSpec{{
					Name: "echo",
					New: func(body application.AnswerBag, _ *application.Application, _ string) Page {
						return &echoPage{stubPage: stubPage{name: "echo", body: body}, question: "The question"}
					},
				}},
			},
			{
				Slug:  "list-task",
				Name:  "List task",
				Pages: []PageSpec{stubSpec("items", "")},
			},
		},
	})
}

func TestCheckYourAnswersRowsAndChangeHrefs(t *testing.T) {
	r := echoRegistry()
	app := &application.Application{
		ID: "abc-123",
		Data: application.Data{
			"echo-task": {"echo": map[string]any{"value": "the answer"}},
			"list-task": {"items": []any{map[string]any{"name": "first"}}},
		},
	}

	review := r.CheckYourAnswers(app)
	if len(review) != 2 {
		t.Fatalf("expected 2 review tasks, got %d", len(review))
	}

	echo := review[0]
	if echo.Slug != "echo-task" || len(echo.Rows) != 1 {
		t.Fatalf("unexpected echo review %+v", echo)
	}
	row := echo.Rows[0]
	if row.Question != "The question" || row.Answer != "the answer" {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.ChangeHref != "/applications/abc-123/tasks/echo-task/pages/echo" {
		t.Fatalf("unexpected change href %q", row.ChangeHref)
	}

	list := review[1]
	if len(list.Rows) != 1 || len(list.Rows[0].Records) != 1 {
		t.Fatalf("unexpected list review %+v", list)
	}
	if list.Rows[0].Answer != "" {
		t.Fatalf("record row should not carry a flat answer, got %q", list.Rows[0].Answer)
	}
}

func TestCheckYourAnswersSkipsEmptyPages(t *testing.T) {
	r := echoRegistry()
	app := &application.Application{
		ID: "abc-123",
		Data: application.Data{
			"echo-task": {"echo": map[string]any{}},
		},
	}
	if review := r.CheckYourAnswers(app); len(review) != 0 {
		t.Fatalf("expected empty review, got %+v", review)
	}
}

func TestFlattenAnswersIncludesRecords(t *testing.T) {
	r := echoRegistry()
	app := &application.Application{
		ID: "abc-123",
		Data: application.Data{
			"echo-task": {"echo": map[string]any{"value": "the answer"}},
			"list-task": {"items": []any{map[string]any{"name": "first", "detail": "d"}}},
		},
	}

	entries := r.FlattenAnswers(app)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Task != "echo-task" || entries[0].Page != "echo" || entries[0].Answer != "the answer" {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
	if entries[1].Answer != "detail: d, name: first" {
		t.Fatalf("unexpected flattened records %q", entries[1].Answer)
	}
}
