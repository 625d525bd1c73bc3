package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"consultation-history-service/internal/domain/dtos"
	"consultation-history-service/internal/domain/entities"
)

func validDraft() dtos.ConsultationDraft {
	return dtos.ConsultationDraft{
		Reason:    "Annual checkup",
		Diagnosis: "Healthy, no issues found",
		Treatment: "None required",
	}
}

func TestValidateConsultationDraft_CreateMode_Valid(t *testing.T) {
	normalized, err := ValidateConsultationDraft(validDraft(), ModeCreate)
	assert.Nil(t, err)
	assert.Equal(t, "Annual checkup", normalized.Reason)
	assert.Equal(t, "Healthy, no issues found", normalized.Diagnosis)
	assert.Equal(t, "None required", normalized.Treatment)
}

func TestValidateConsultationDraft_TrimsFields(t *testing.T) {
	draft := validDraft()
	draft.Reason = "  Annual checkup  "
	draft.Notes = "  keep an eye on weight  "
	draft.Vaccinations = "   "

	normalized, err := ValidateConsultationDraft(draft, ModeCreate)
	assert.Nil(t, err)
	assert.Equal(t, "Annual checkup", normalized.Reason)
	assert.Equal(t, "keep an eye on weight", normalized.Notes)
	assert.Empty(t, normalized.Vaccinations, "whitespace-only optional field should coerce to absent")
}

func TestValidateConsultationDraft_ReasonBounds(t *testing.T) {
	cases := []struct {
		name   string
		reason string
		wantOK bool
	}{
		{"empty", "", false},
		{"below minimum", "Flu", false},
		{"at minimum", "Cough", true},
		{"at maximum", strings.Repeat("r", 300), true},
		{"above maximum", strings.Repeat("r", 301), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := validDraft()
			draft.Reason = tc.reason
			_, err := ValidateConsultationDraft(draft, ModeCreate)
			if tc.wantOK {
				assert.Nil(t, err)
			} else {
				assert.NotNil(t, err)
				assert.Contains(t, err.Fields, "reason")
			}
		})
	}
}

func TestValidateConsultationDraft_DiagnosisMinimum(t *testing.T) {
	draft := validDraft()
	draft.Diagnosis = "ok"

	_, err := ValidateConsultationDraft(draft, ModeCreate)
	assert.NotNil(t, err)
	assert.Equal(t, "diagnosis must be at least 10 characters", err.Fields["diagnosis"])
}

func TestValidateConsultationDraft_TreatmentMinimum(t *testing.T) {
	draft := validDraft()
	draft.Treatment = "none"

	_, err := ValidateConsultationDraft(draft, ModeCreate)
	assert.NotNil(t, err)
	assert.Contains(t, err.Fields, "treatment")
}

func TestValidateConsultationDraft_ChangeDescriptionByMode(t *testing.T) {
	draft := validDraft()

	// Amend mode requires it.
	_, err := ValidateConsultationDraft(draft, ModeAmend)
	assert.NotNil(t, err)
	assert.Contains(t, err.Fields, "change_description")

	draft.ChangeDescription = "Added vaccination note"
	normalized, err := ValidateConsultationDraft(draft, ModeAmend)
	assert.Nil(t, err)
	assert.Equal(t, "Added vaccination note", normalized.ChangeDescription)

	// Create mode ignores and clears it.
	normalized, err = ValidateConsultationDraft(draft, ModeCreate)
	assert.Nil(t, err)
	assert.Empty(t, normalized.ChangeDescription)
}

func TestValidateConsultationDraft_CollectsAllFieldErrors(t *testing.T) {
	draft := dtos.ConsultationDraft{Reason: "x", Diagnosis: "short", Treatment: ""}

	_, err := ValidateConsultationDraft(draft, ModeAmend)
	assert.NotNil(t, err)
	assert.Len(t, err.Fields, 4)
	assert.Contains(t, err.Fields, "reason")
	assert.Contains(t, err.Fields, "diagnosis")
	assert.Contains(t, err.Fields, "treatment")
	assert.Contains(t, err.Fields, "change_description")
}

func TestValidateConsultationDraft_EmptyVitalSignsCoercedToAbsent(t *testing.T) {
	draft := validDraft()
	draft.VitalSigns = &entities.VitalSigns{Summary: "   "}

	normalized, err := ValidateConsultationDraft(draft, ModeCreate)
	assert.Nil(t, err)
	assert.Nil(t, normalized.VitalSigns)
}

func TestValidateConsultationDraft_StructuredVitalSignsKept(t *testing.T) {
	temp := 38.5
	draft := validDraft()
	draft.VitalSigns = &entities.VitalSigns{TemperatureC: &temp, Summary: " febrile "}

	normalized, err := ValidateConsultationDraft(draft, ModeCreate)
	assert.Nil(t, err)
	if assert.NotNil(t, normalized.VitalSigns) {
		assert.Equal(t, 38.5, *normalized.VitalSigns.TemperatureC)
		assert.Equal(t, "febrile", normalized.VitalSigns.Summary)
	}
}

func TestValidateConsultationDraft_DoesNotMutateInput(t *testing.T) {
	draft := validDraft()
	draft.Reason = "  Annual checkup  "

	_, err := ValidateConsultationDraft(draft, ModeCreate)
	assert.Nil(t, err)
	assert.Equal(t, "  Annual checkup  ", draft.Reason, "validation must be pure")
}
