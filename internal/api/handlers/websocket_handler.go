package handlers

import (
	"net/http"
	"sync"

	ws "github.com/devlinkr/devlinkr-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler upgrades HTTP connections to websocket feed channels.
type WebSocketHandler struct {
	hub *ws.Hub
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the websocket connection request. Supports both /ws for the
// whole feed and /ws/posts/{id} for a single post's activity.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	postID := chi.URLParam(r, "id")

	client := ws.NewClient(h.hub, conn, postID)
	h.hub.Register <- client

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(h.handleIncomingWSMessage)
	}()

	// Cleanup on disconnect.
	go func() {
		wg.Wait()
		h.hub.Unregister <- client
	}()
}

// handleIncomingWSMessage processes messages received from a feed client.
// The feed channel is push-only; anything inbound is reported back.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	log.Warn().Bytes("message", message).Msg("Unexpected message on feed channel")
	client.Send <- ws.NewErrorMessage("The feed channel does not accept messages")
}
