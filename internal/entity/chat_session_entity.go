package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is a titled, ordered, append-only sequence of messages.
// Title stays at the sentinel until the first message is appended.
type ChatSession struct {
	Id        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Messages  []*ChatMessage `json:"messages"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SessionCatalog is the persisted unit: every session owned by one user plus
// the active-session pointer. Serialized as a whole to the key-value store
// after each mutation.
type SessionCatalog struct {
	Sessions        []*ChatSession `json:"sessions"`
	ActiveSessionId *uuid.UUID     `json:"active_session_id,omitempty"`
}

func (c *SessionCatalog) FindSession(id uuid.UUID) *ChatSession {
	for _, s := range c.Sessions {
		if s.Id == id {
			return s
		}
	}
	return nil
}
