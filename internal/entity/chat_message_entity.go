package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one entry in a session. AudioRef carries only a reference to
// synthesized audio (file name under the audio dir); the bytes themselves are
// never part of the durable record.
type ChatMessage struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Lang      string    `json:"lang,omitempty"`
	ModelUsed string    `json:"model_used,omitempty"`
	AudioRef  string    `json:"audio_ref,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
