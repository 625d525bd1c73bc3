package dtos

import (
	"github.com/google/uuid"

	"consultation-history-service/internal/domain/entities"
)

// ConsultationDraft is the caller-supplied payload for creating or amending a
// consultation. ChangeDescription is required on amendments and ignored on
// creation; AuthorID identifies who made the change and falls back to the
// consultation's practitioner when absent.
type ConsultationDraft struct {
	Reason            string               `json:"reason" validate:"required"`
	Anamnesis         string               `json:"anamnesis,omitempty"`
	VitalSigns        *entities.VitalSigns `json:"vital_signs,omitempty"`
	Diagnosis         string               `json:"diagnosis" validate:"required"`
	Treatment         string               `json:"treatment" validate:"required"`
	Vaccinations      string               `json:"vaccinations,omitempty"`
	Notes             string               `json:"notes,omitempty"`
	ChangeDescription string               `json:"change_description,omitempty"`
	AuthorID          uuid.UUID            `json:"author_id,omitempty"`
}

// ClinicalFields converts the draft's clinical content to the entity block.
func (d ConsultationDraft) ClinicalFields() entities.ClinicalFields {
	return entities.ClinicalFields{
		Reason:       d.Reason,
		Anamnesis:    d.Anamnesis,
		VitalSigns:   d.VitalSigns,
		Diagnosis:    d.Diagnosis,
		Treatment:    d.Treatment,
		Vaccinations: d.Vaccinations,
		Notes:        d.Notes,
	}
}
