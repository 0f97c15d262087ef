package websocket

import "encoding/json"

// Message defines the structure for websocket feed messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage marshals a feed message for transmission.
func NewMessage(action string, payload interface{}) []byte {
	data, _ := json.Marshal(Message{Action: action, Payload: payload})
	return data
}

// NewErrorMessage builds an error message for a client.
func NewErrorMessage(msg string) []byte {
	return NewMessage("error", map[string]string{"msg": msg})
}
