package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and broadcasts feed events to
// them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Feed-level messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// A map of post IDs to the set of clients watching that post.
	mu            sync.RWMutex
	subscriptions map[string]map[*Client]bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
			// Clients that connected for a single post are subscribed
			// to it on registration.
			if client.PostID != "" {
				h.addSubscription(client, client.PostID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		}
	}
}

// BroadcastTo sends a message to all clients watching a specific post.
func (h *Hub) BroadcastTo(postID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.subscriptions[postID] {
		select {
		case client.Send <- message:
		default:
			// Slow client; the read pump's unregister will reap it.
		}
	}
}

func (h *Hub) addSubscription(client *Client, postID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscriptions[postID] == nil {
		h.subscriptions[postID] = make(map[*Client]bool)
	}
	h.subscriptions[postID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for postID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, postID)
			}
		}
	}
}
