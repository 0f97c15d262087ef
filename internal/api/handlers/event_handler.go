package handlers

import (
	"net/http"
	"strconv"

	"github.com/devlinkr/devlinkr-be/internal/services"
	"github.com/rs/zerolog/log"
)

const defaultEventLimit = 20

// EventHandler handles HTTP requests for the activity log.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent handles the request to read recent activity, newest first.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			respondMsg(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list events")
		respondServerError(w)
		return
	}

	respondJSON(w, http.StatusOK, events)
}
