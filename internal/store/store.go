package store

import (
	"errors"

	"github.com/devlinkr/devlinkr-be/internal/models"
)

// ErrNotFound is returned when a document does not exist in the store.
var ErrNotFound = errors.New("record not found")

// UserStore defines the persistence contract for user documents.
type UserStore interface {
	FindUserByID(id string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	InsertUser(user *models.User) error
}

// PostStore defines the persistence contract for post documents.
type PostStore interface {
	FindPostByID(id string) (*models.Post, error)
	InsertPost(post *models.Post) error
	SavePost(post *models.Post) error
	DeletePost(id string) error
	FindAllPostsByDateDesc() ([]*models.Post, error)
}

// EventStore defines the persistence contract for activity log entries.
type EventStore interface {
	InsertEvent(event *models.Event) error
	FindRecentEvents(limit int) ([]*models.Event, error)
}
