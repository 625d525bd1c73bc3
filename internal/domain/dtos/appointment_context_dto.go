package dtos

import "github.com/google/uuid"

// AppointmentContext carries the owning-visit data a caller must supply when
// a consultation is created. The appointment itself is managed by the
// scheduling feature; the versioning service only checks the prerequisites.
type AppointmentContext struct {
	AppointmentID   *uuid.UUID `json:"appointment_id,omitempty"`
	PractitionerID  uuid.UUID  `json:"practitioner_id" validate:"required"`
	HistoryRecordID uuid.UUID  `json:"history_record_id" validate:"required"`
}
