package dtos

import "time"

// HistoryEntry is one row of the audit-trail projection served to chart
// viewers, most recent version first. CanRestore is false for the entry the
// consultation is currently on.
type HistoryEntry struct {
	Version           int       `json:"version"`
	ChangeDescription string    `json:"change_description,omitempty"`
	AuthoredAt        time.Time `json:"authored_at"`
	AuthorLabel       string    `json:"author_label"`
	IsCurrent         bool      `json:"is_current"`
	CanRestore        bool      `json:"can_restore"`
}
