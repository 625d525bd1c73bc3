package entities

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalFields groups the amendable clinical content of a consultation.
// The same block lives on the current Consultation and, copied verbatim, on
// every archived ConsultationVersion.
type ClinicalFields struct {
	Reason       string      `json:"reason" db:"reason" gorm:"type:text;not null"`
	Anamnesis    string      `json:"anamnesis,omitempty" db:"anamnesis" gorm:"type:text"`
	VitalSigns   *VitalSigns `json:"vital_signs,omitempty" db:"vital_signs" gorm:"type:jsonb"`
	Diagnosis    string      `json:"diagnosis" db:"diagnosis" gorm:"type:text;not null"`
	Treatment    string      `json:"treatment" db:"treatment" gorm:"type:text;not null"`
	Vaccinations string      `json:"vaccinations,omitempty" db:"vaccinations" gorm:"type:text"`
	Notes        string      `json:"notes,omitempty" db:"notes" gorm:"type:text"`
}

// Consultation is the live state of one clinical episode, normally tied 1:1
// to an appointment. It is created once, never deleted, and amended through
// the versioning service only; Version always equals the highest archived
// version number.
type Consultation struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	HistoryRecordID uuid.UUID  `json:"history_record_id" db:"history_record_id" gorm:"type:uuid;not null;index"`
	AppointmentID   *uuid.UUID `json:"appointment_id,omitempty" db:"appointment_id" gorm:"type:uuid;index"`
	PractitionerID  uuid.UUID  `json:"practitioner_id" db:"practitioner_id" gorm:"type:uuid;not null"`
	Version         int        `json:"version" db:"version" gorm:"not null;default:1"`

	ClinicalFields `gorm:"embedded"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}
