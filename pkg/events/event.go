package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is the contract every bus message implements.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHAT_MESSAGE").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes used across the bus.
const (
	TypeTurnState   = "CHAT_TURN_STATE"
	TypeChatMessage = "CHAT_MESSAGE"
)

// BaseEvent is a plain implementation used both for constructing events and
// for reconstructing them on the consuming side.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTurnStateEvent records a turn-state transition for one user's session.
func NewTurnStateEvent(userId, sessionId uuid.UUID, state string) Event {
	return BaseEvent{
		Type: TypeTurnState,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": sessionId.String(),
			"state":      state,
		},
		OccurredAt: time.Now(),
	}
}

// NewChatMessageEvent records a message appended to a session. The message
// map mirrors the history DTO so the delivery side can forward it verbatim.
func NewChatMessageEvent(userId, sessionId uuid.UUID, message map[string]interface{}) Event {
	return BaseEvent{
		Type: TypeChatMessage,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"session_id": sessionId.String(),
			"message":    message,
		},
		OccurredAt: time.Now(),
	}
}
