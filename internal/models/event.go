package models

import "time"

// Event is an activity log entry recorded for feed mutations.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	PostID  *string   `json:"postId,omitempty"`
	Date    time.Time `json:"date"`
}
