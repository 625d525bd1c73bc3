package services

import (
	"strings"
	"unicode/utf8"

	"consultation-history-service/internal/domain/dtos"
)

// ValidationMode selects which rule set applies to a consultation draft.
type ValidationMode string

const (
	// ModeCreate validates the initial draft of a consultation.
	ModeCreate ValidationMode = "create"
	// ModeAmend validates an amendment and additionally requires a change
	// description.
	ModeAmend ValidationMode = "amend"
)

// Field length bounds for consultation drafts.
const (
	reasonMinLen    = 5
	reasonMaxLen    = 300
	diagnosisMinLen = 10
	treatmentMinLen = 5
)

// ValidateConsultationDraft checks the field-level constraints of a draft and
// returns the normalized payload: every string trimmed, optional empties
// coerced to absent. Pure; no partial success — any field error rejects the
// whole draft.
func ValidateConsultationDraft(draft dtos.ConsultationDraft, mode ValidationMode) (dtos.ConsultationDraft, *ValidationError) {
	fieldErrors := make(map[string]string)

	normalized := draft
	normalized.Reason = strings.TrimSpace(draft.Reason)
	normalized.Anamnesis = strings.TrimSpace(draft.Anamnesis)
	normalized.Diagnosis = strings.TrimSpace(draft.Diagnosis)
	normalized.Treatment = strings.TrimSpace(draft.Treatment)
	normalized.Vaccinations = strings.TrimSpace(draft.Vaccinations)
	normalized.Notes = strings.TrimSpace(draft.Notes)
	normalized.ChangeDescription = strings.TrimSpace(draft.ChangeDescription)

	if normalized.VitalSigns != nil {
		vs := *normalized.VitalSigns
		vs.Summary = strings.TrimSpace(vs.Summary)
		if vs.IsZero() {
			normalized.VitalSigns = nil
		} else {
			normalized.VitalSigns = &vs
		}
	}

	switch length := utf8.RuneCountInString(normalized.Reason); {
	case length == 0:
		fieldErrors["reason"] = "reason is required"
	case length < reasonMinLen || length > reasonMaxLen:
		fieldErrors["reason"] = "reason must be between 5 and 300 characters"
	}

	switch length := utf8.RuneCountInString(normalized.Diagnosis); {
	case length == 0:
		fieldErrors["diagnosis"] = "diagnosis is required"
	case length < diagnosisMinLen:
		fieldErrors["diagnosis"] = "diagnosis must be at least 10 characters"
	}

	switch length := utf8.RuneCountInString(normalized.Treatment); {
	case length == 0:
		fieldErrors["treatment"] = "treatment is required"
	case length < treatmentMinLen:
		fieldErrors["treatment"] = "treatment must be at least 5 characters"
	}

	switch mode {
	case ModeAmend:
		if normalized.ChangeDescription == "" {
			fieldErrors["change_description"] = "change description is required when amending a consultation"
		}
	case ModeCreate:
		// The initial snapshot carries no change description.
		normalized.ChangeDescription = ""
	}

	if len(fieldErrors) > 0 {
		return dtos.ConsultationDraft{}, &ValidationError{Fields: fieldErrors}
	}
	return normalized, nil
}
