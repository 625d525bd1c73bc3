package dtos

import "time"

// ScheduleFollowUpRequest is the payload for linking a future visit to a
// consultation. ScheduledAt must lie strictly in the future and Reason must
// be at least ten characters after trimming.
type ScheduleFollowUpRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Reason      string    `json:"reason" validate:"required"`
}
