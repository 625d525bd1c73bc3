package dtos

import "github.com/google/uuid"

// RestoreConsultationRequest selects a historical snapshot to bring back as
// the new current state. ChangeDescription is optional; the service generates
// one when it is empty.
type RestoreConsultationRequest struct {
	TargetVersion     int       `json:"target_version" validate:"required"`
	ChangeDescription string    `json:"change_description,omitempty"`
	AuthorID          uuid.UUID `json:"author_id,omitempty"`
}
