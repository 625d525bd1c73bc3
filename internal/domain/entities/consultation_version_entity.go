package entities

import (
	"time"

	"github.com/google/uuid"
)

// ConsultationVersion is an immutable snapshot of a consultation's clinical
// fields as they stood at a given version number. Rows are append-only: never
// updated, never deleted, unique per (consultation_id, version). The unique
// index doubles as the optimistic-concurrency gate for racing writers.
type ConsultationVersion struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ConsultationID uuid.UUID `json:"consultation_id" db:"consultation_id" gorm:"type:uuid;not null;uniqueIndex:ux_consultation_versions_number"`
	Version        int       `json:"version" db:"version" gorm:"not null;uniqueIndex:ux_consultation_versions_number"`

	ClinicalFields `gorm:"embedded"`

	// ChangeDescription is empty on the creation snapshot (version 1) and
	// required on every amendment; restore snapshots carry a generated one.
	ChangeDescription string    `json:"change_description,omitempty" db:"change_description" gorm:"type:text"`
	AuthorID          uuid.UUID `json:"author_id" db:"author_id" gorm:"type:uuid;not null"`
	CreatedAt         time.Time `json:"created_at" db:"created_at" gorm:"not null"`
}
