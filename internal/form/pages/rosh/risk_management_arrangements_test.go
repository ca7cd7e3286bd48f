package rosh

import (
	"testing"

	"github.com/caseflow/intake_service/internal/app/domain/application"
	"github.com/caseflow/intake_service/internal/form"
)

func TestArrangementsRequireASelection(t *testing.T) {
	page := NewRiskManagementArrangements(application.AnswerBag{}, roshApp(nil), "")
	errs := page.Errors()
	if errs["arrangements"] == "" {
		t.Fatalf("expected selection error, got %+v", errs)
	}
}

func TestArrangementsNoCannotCombineWithOthers(t *testing.T) {
	page := NewRiskManagementArrangements(application.AnswerBag{
		"arrangements": []any{"no", "mappa"},
	}, roshApp(nil), "")
	if errs := page.Errors(); errs["arrangements"] == "" {
		t.Fatalf("expected selection error, got %+v", errs)
	}
}

func TestArrangementsRequireDetailsPerSelection(t *testing.T) {
	page := NewRiskManagementArrangements(application.AnswerBag{
		"arrangements": []any{"mappa", "iom"},
		"mappaDetails": "level 2",
	}, roshApp(nil), "")

	errs := page.Errors()
	if errs["iomDetails"] != "Provide details about the IOM arrangement" {
		t.Fatalf("unexpected iom error %q", errs["iomDetails"])
	}
	if errs["mappaDetails"] != "" {
		t.Fatalf("mappa detail was provided, got error %q", errs["mappaDetails"])
	}
}

func TestArrangementsOnSaveDropsUnselectedDetails(t *testing.T) {
	page := NewRiskManagementArrangements(application.AnswerBag{
		"arrangements": []any{"no"},
		"mappaDetails": "stale",
		"maracDetails": "stale",
		"iomDetails":   "stale",
	}, roshApp(nil), "")

	body := page.(form.OnSaver).OnSave()
	for _, field := range []string{"mappaDetails", "maracDetails", "iomDetails"} {
		if _, present := body[field]; present {
			t.Fatalf("field %s should have been dropped: %+v", field, body)
		}
	}
}

func TestArrangementsResponseJoinsLabels(t *testing.T) {
	page := NewRiskManagementArrangements(application.AnswerBag{
		"arrangements": []any{"mappa", "marac"},
		"mappaDetails": "level 2 category 2",
		"maracDetails": "monthly review",
	}, roshApp(nil), "")

	response := page.Response()
	question := "Is Roger Smith part of any multi-agency risk management arrangements?"
	if response[question] != "MAPPA, MARAC" {
		t.Fatalf("unexpected joined labels %q", response[question])
	}
	if response["Provide details about the MAPPA arrangement"] != "level 2 category 2" {
		t.Fatalf("unexpected response %+v", response)
	}
}
