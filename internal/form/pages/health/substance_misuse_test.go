package health

import (
	"testing"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

func healthApp() *application.Application {
	return &application.Application{
		ID:     "abc-123",
		Person: application.Person{CRN: "X320741", Name: "Roger Smith"},
	}
}

func TestSubstanceMisuseRequiresTopLevelAnswers(t *testing.T) {
	page := NewSubstanceMisuse(application.AnswerBag{}, healthApp(), "")

	errs := page.Errors()
	for _, field := range []string{"usesIllegalSubstances", "engagedWithDrugAndAlcoholService", "requiresSubstituteMedication"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %+v", field, errs)
		}
	}
}

func TestSubstanceMisuseRequiresDetailOnYes(t *testing.T) {
	page := NewSubstanceMisuse(application.AnswerBag{
		"usesIllegalSubstances":            "yes",
		"engagedWithDrugAndAlcoholService": "no",
		"requiresSubstituteMedication":     "no",
	}, healthApp(), "")

	errs := page.Errors()
	if errs["substanceMisuseHistory"] != "Name the illegal substances they take" {
		t.Fatalf("unexpected history error %q", errs["substanceMisuseHistory"])
	}
	if errs["substanceMisuseDetail"] == "" {
		t.Fatalf("expected detail error, got %+v", errs)
	}
}

func TestSubstanceMisuseValidBodyHasNoErrors(t *testing.T) {
	page := NewSubstanceMisuse(application.AnswerBag{
		"usesIllegalSubstances":            "no",
		"engagedWithDrugAndAlcoholService": "no",
		"requiresSubstituteMedication":     "no",
	}, healthApp(), "")

	if errs := page.Errors(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestSubstanceMisuseOnSaveDropsOrphanedDetails(t *testing.T) {
	page := NewSubstanceMisuse(application.AnswerBag{
		"usesIllegalSubstances":            "no",
		"substanceMisuseHistory":           "stale",
		"substanceMisuseDetail":            "stale",
		"engagedWithDrugAndAlcoholService": "no",
		"drugAndAlcoholServiceDetail":      "stale",
		"requiresSubstituteMedication":     "yes",
		"substituteMedicationDetail":       "methadone",
	}, healthApp(), "")

	saver, ok := page.(form.OnSaver)
	if !ok {
		t.Fatal("page must implement OnSave")
	}
	body := saver.OnSave()

	for _, field := range []string{"substanceMisuseHistory", "substanceMisuseDetail", "drugAndAlcoholServiceDetail"} {
		if _, present := body[field]; present {
			t.Fatalf("field %s should have been dropped: %+v", field, body)
		}
	}
	if application.String(body, "substituteMedicationDetail") != "methadone" {
		t.Fatalf("kept detail lost: %+v", body)
	}
}

func TestSubstanceMisuseResponseOmitsEmptyAnswers(t *testing.T) {
	page := NewSubstanceMisuse(application.AnswerBag{
		"usesIllegalSubstances":            "no",
		"engagedWithDrugAndAlcoholService": "no",
		"requiresSubstituteMedication":     "no",
	}, healthApp(), "")

	response := page.Response()
	if response["Do they take any illegal substances?"] != "No" {
		t.Fatalf("unexpected response %+v", response)
	}
	for question, answer := range response {
		if answer == "" {
			t.Fatalf("response contains empty answer for %q", question)
		}
	}
}
