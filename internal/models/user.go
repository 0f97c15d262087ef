package models

import "time"

// User represents a user account in the system.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Avatar   string    `json:"avatar"`
	Password string    `json:"-"` // bcrypt hash, never exposed to the client
	Date     time.Time `json:"date"`
}
