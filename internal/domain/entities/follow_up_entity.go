package entities

import (
	"time"

	"github.com/google/uuid"
)

// FollowUpStatus is the lifecycle state of a scheduled follow-up visit.
type FollowUpStatus string

const (
	FollowUpScheduled FollowUpStatus = "scheduled"
	FollowUpCompleted FollowUpStatus = "completed"
	FollowUpCanceled  FollowUpStatus = "canceled"
)

// FollowUp links a consultation to a scheduled return visit. The versioning
// engine only guarantees ConsultationID stays a stable reference; follow-ups
// are owned by the scheduling feature.
type FollowUp struct {
	ID             uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ConsultationID uuid.UUID      `json:"consultation_id" db:"consultation_id" gorm:"type:uuid;not null;index"`
	ScheduledAt    time.Time      `json:"scheduled_at" db:"scheduled_at" gorm:"not null"`
	Reason         string         `json:"reason" db:"reason" gorm:"type:text;not null"`
	Status         FollowUpStatus `json:"status" db:"status" gorm:"type:varchar(16);not null;default:'scheduled'"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at" gorm:"not null"`
}
