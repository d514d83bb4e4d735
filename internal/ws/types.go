package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeMove    MessageType = "move"
	MessageTypePromote MessageType = "promote"
	MessageTypeReset   MessageType = "reset"

	// server -> client
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMoveResult MessageType = "moveResult"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}

type PromotePayload struct {
	Piece string `json:"piece"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
