// Package apply assembles the intake application form: the sections, tasks,
// and page chains the wizard serves.
package apply

import (
	"github.com/caseflow/intake_service/internal/form"
	"github.com/caseflow/intake_service/internal/form/pages/eligibility"
	"github.com/caseflow/intake_service/internal/form/pages/funding"
	"github.com/caseflow/intake_service/internal/form/pages/health"
	"github.com/caseflow/intake_service/internal/form/pages/offence"
	"github.com/caseflow/intake_service/internal/form/pages/rosh"
)

// NewRegistry builds the intake form schema. Task order within a section is
// display order; page order within a task is the linear chain the status
// walk follows.
func NewRegistry() *form.Registry {
	return form.NewRegistry(
		form.Section{
			Title: "Before you start",
			Tasks: []form.Task{
				{
					Slug: "confirm-eligibility",
					Name: "Confirm eligibility",
					Pages: []form.PageSpec{
						{Name: "confirm-eligibility", New: eligibility.NewConfirmEligibility},
					},
				},
				{
					Slug:      "funding-information",
					Name:      "Add funding information",
					DependsOn: []string{"confirm-eligibility"},
					Pages: []form.PageSpec{
						{Name: "funding-source", New: funding.NewFundingSource},
					},
				},
			},
		},
		form.Section{
			Title: "Risks and needs",
			Tasks: []form.Task{
				{
					Slug:      "health-needs",
					Name:      "Add health needs",
					DependsOn: []string{"confirm-eligibility"},
					Pages: []form.PageSpec{
						{Name: "substance-misuse", New: health.NewSubstanceMisuse},
						{Name: "physical-health", New: health.NewPhysicalHealth},
						{Name: "communication-and-language", New: health.NewCommunicationAndLanguage},
						{Name: "other-health", New: health.NewOtherHealth},
					},
				},
				{
					Slug:      "risk-of-serious-harm",
					Name:      "Add risk of serious harm (RoSH) information",
					DependsOn: []string{"confirm-eligibility"},
					Pages: []form.PageSpec{
						{Name: "oasys-import", New: rosh.NewOasysImport, Initialize: rosh.InitializeOasysImport},
						{Name: "summary", New: rosh.NewSummary},
						{Name: "risk-to-others", New: rosh.NewRiskToOthers},
						{Name: "risk-factors", New: rosh.NewRiskFactors},
						{Name: "reducing-risk", New: rosh.NewReducingRisk},
						{Name: "risk-management-arrangements", New: rosh.NewRiskManagementArrangements},
						{Name: "cell-share-information", New: rosh.NewCellShareInformation},
						{Name: "additional-risk-information", New: rosh.NewAdditionalRiskInformation},
					},
				},
			},
		},
		form.Section{
			Title: "Offence information",
			Tasks: []form.Task{
				{
					Slug:      "offending-history",
					Name:      "Add offending history",
					DependsOn: []string{"confirm-eligibility"},
					Pages: []form.PageSpec{
						{Name: "any-previous-convictions", New: offence.NewAnyPreviousConvictions},
						{Name: "offence-history", New: offence.NewOffenceHistory},
					},
				},
			},
		},
	)
}
