package responder

import (
	"context"

	"github.com/google/uuid"
)

// SessionContext carries the session-scoped facts a responder may need.
// Responders never mutate session state; that is the orchestrator's job.
type SessionContext struct {
	UserId    uuid.UUID
	SessionId uuid.UUID
	Lang      string
	History   []HistoryEntry
}

// HistoryEntry is a prior exchange in provider-agnostic form.
type HistoryEntry struct {
	Role    string
	Content string
}

// FileRef is an uploaded file held in memory, before any pre-processing.
type FileRef struct {
	Name     string
	MimeType string
	Data     []byte
}

type TextResult struct {
	Content   string
	ModelUsed string
}

type AudioResult struct {
	UserText      string
	AssistantText string
	Lang          string
	ModelUsed     string

	// AudioRef is the durable reference (file name under the audio dir).
	// AudioBytes is transient and returned to the caller only.
	AudioRef    string
	AudioFormat string
	AudioBytes  []byte
}

type FileResult struct {
	DocumentId uuid.UUID
	Name       string
	Chunks     int
}

// Text fulfills a text turn with exactly one attempt.
type Text interface {
	Send(ctx context.Context, text string, sctx SessionContext) (*TextResult, error)
}

// Audio fulfills a voice turn: transcription, reply, synthesis.
type Audio interface {
	Send(ctx context.Context, audio []byte, sctx SessionContext) (*AudioResult, error)
}

// File pre-processes an uploaded file before the chat exchange of a turn.
type File interface {
	Send(ctx context.Context, ref *FileRef, sctx SessionContext) (*FileResult, error)
}

// Translator translates a batch of strings. The result has exactly one output
// per input, in input order; anything else must surface as an *Error.
type Translator interface {
	Translate(ctx context.Context, texts []string, targetLang string) ([]string, error)
}
