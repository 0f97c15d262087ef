package services

import (
	"time"

	"github.com/devlinkr/devlinkr-be/internal/models"
	"github.com/devlinkr/devlinkr-be/internal/store"
	"github.com/google/uuid"
)

// EventServiceProvider defines the interface for the activity log.
type EventServiceProvider interface {
	CreateEvent(eventType, message string, postID *string) error
	GetRecentEvents(limit int) ([]*models.Event, error)
}

// EventService provides business logic for the activity log.
type EventService struct {
	events store.EventStore
}

// NewEventService creates a new EventService.
func NewEventService(events store.EventStore) *EventService {
	return &EventService{events: events}
}

// CreateEvent appends a new entry to the activity log.
func (s *EventService) CreateEvent(eventType, message string, postID *string) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Message: message,
		PostID:  postID,
		Date:    time.Now(),
	}
	return s.events.InsertEvent(&event)
}

// GetRecentEvents retrieves the most recent activity entries, newest first.
func (s *EventService) GetRecentEvents(limit int) ([]*models.Event, error) {
	return s.events.FindRecentEvents(limit)
}
