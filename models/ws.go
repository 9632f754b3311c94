package models

import "encoding/json"

// Socket event names.
const (
	EventRequestSprite = "request-sprite"
	EventDeleteSprite  = "delete-sprite"
	EventNewSprite     = "new-sprite"
	EventError         = "error"
)

// SocketMessage is an inbound frame: {"event": "...", "data": ...}.
type SocketMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutboundMessage is a frame emitted to a client.
type OutboundMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type DeleteSpritePayload struct {
	ID int `json:"id"`
}

type SocketError struct {
	Message string `json:"message"`
}
