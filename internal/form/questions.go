package form

import "fmt"

// Question is one catalogue entry: the question text shown to the applicant
// and, for closed questions, the display label for each raw answer value.
type Question struct {
	Text    string
	Answers map[string]string
}

// Catalogue maps task slug to page name to field name.
type Catalogue map[string]map[string]map[string]Question

var yesNo = map[string]string{"yes": "Yes", "no": "No"}

// Questions returns the question catalogue personalised with the person's
// name. Pages pull their question text from here so the check-your-answers
// projection and the pages can never drift apart.
func Questions(name string) Catalogue {
	return Catalogue{
		"confirm-eligibility": {
			"confirm-eligibility": {
				"isEligible": {
					Text: fmt.Sprintf("Is %s eligible for short-term accommodation?", name),
					Answers: map[string]string{
						"yes": fmt.Sprintf("Yes, I confirm %s is eligible", name),
						"no":  fmt.Sprintf("No, %s is not eligible", name),
					},
				},
			},
		},
		"funding-information": {
			"funding-source": {
				"fundingSource": {
					Text: fmt.Sprintf("How will %s pay for their accommodation and service charge?", name),
					Answers: map[string]string{
						"personalSavings": "Personal money or savings",
						"benefits":        "Benefits",
					},
				},
			},
		},
		"health-needs": {
			"substance-misuse": {
				"usesIllegalSubstances":            {Text: "Do they take any illegal substances?", Answers: yesNo},
				"substanceMisuseHistory":           {Text: "What substances do they take?"},
				"substanceMisuseDetail":            {Text: "How often do they take these substances, by what method, and how much?"},
				"engagedWithDrugAndAlcoholService": {Text: "Are they engaged with a drug and alcohol service?", Answers: yesNo},
				"drugAndAlcoholServiceDetail":      {Text: "Name the drug and alcohol service"},
				"requiresSubstituteMedication":     {Text: "Do they require any substitute medication for misused substances?", Answers: yesNo},
				"substituteMedicationDetail":       {Text: "What substitute medication do they take?"},
			},
			"physical-health": {
				"hasPhysicalNeeds":    {Text: "Do they have any physical health needs?", Answers: yesNo},
				"physicalNeedsDetail": {Text: "Please describe their physical health needs."},
				"canClimbStairs":      {Text: "Can they climb stairs?", Answers: yesNo},
			},
			"communication-and-language": {
				"hasCommunicationNeeds": {Text: "Do they have any additional communication needs?", Answers: yesNo},
				"communicationDetail":   {Text: "Please describe their communication needs."},
				"requiresInterpreter":   {Text: "Do they need an interpreter?", Answers: yesNo},
				"interpretationDetail":  {Text: "What language do they need an interpreter for?"},
				"hasSupportNeeds":       {Text: "Do they need any support to see, hear, speak, or understand?", Answers: yesNo},
				"supportDetail":         {Text: "Please describe their support needs."},
			},
			"other-health": {
				"hasLongTermHealthCondition": {Text: "Are they managing any long term health conditions?", Answers: yesNo},
				"healthConditionDetail":      {Text: "Please describe the long term health conditions."},
				"hasSeizures":                {Text: "Have they experienced any seizures or epilepsy?", Answers: yesNo},
				"seizuresDetail":             {Text: "Please describe the type and any treatment."},
			},
		},
		"risk-of-serious-harm": {
			"summary": {
				"additionalComments": {Text: "Additional comments (optional)"},
			},
			"risk-to-others": {
				"whoIsAtRisk":  {Text: "Who is at risk?"},
				"natureOfRisk": {Text: "What is the nature of the risk?"},
			},
			"risk-factors": {
				"circumstancesLikelyToIncreaseRisk": {Text: "What circumstances are likely to increase risk?"},
				"whenIsRiskLikelyToBeGreatest":      {Text: "When is the risk likely to be the greatest?"},
			},
			"reducing-risk": {
				"factorsLikelyToReduceRisk": {Text: "What factors are likely to reduce risk?"},
			},
			"risk-management-arrangements": {
				"arrangements": {
					Text: fmt.Sprintf("Is %s part of any multi-agency risk management arrangements?", name),
					Answers: map[string]string{
						"mappa": "MAPPA",
						"marac": "MARAC",
						"iom":   "IOM",
						"no":    "No, this person is not part of these arrangements",
					},
				},
				"mappaDetails": {Text: "Provide details about the MAPPA arrangement"},
				"maracDetails": {Text: "Provide details about the MARAC arrangement"},
				"iomDetails":   {Text: "Provide details about the IOM arrangement"},
			},
			"cell-share-information": {
				"hasCellShareComments":       {Text: "Are there any comments to add about cell sharing?", Answers: yesNo},
				"cellShareInformationDetail": {Text: "Cell sharing information"},
			},
			"additional-risk-information": {
				"hasAdditionalInformation":    {Text: fmt.Sprintf("Is there any other risk information for %s?", name), Answers: yesNo},
				"additionalInformationDetail": {Text: "Additional information"},
			},
		},
		"offending-history": {
			"any-previous-convictions": {
				"hasAnyPreviousConvictions": {Text: fmt.Sprintf("Does %s have any previous convictions?", name), Answers: yesNo},
			},
			"offence-history": {},
		},
	}
}

// Question returns the catalogue entry for (task, page, field). Missing
// entries come back zero-valued so callers can fall back to the raw value.
func (c Catalogue) Question(task, page, field string) Question {
	return c[task][page][field]
}
