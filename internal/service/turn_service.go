package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/responder"

	"github.com/google/uuid"
)

// TurnObserver receives presentation-layer notifications: every appended
// message and every turn-state transition. Implementations must not block.
type TurnObserver interface {
	TurnStateChanged(userId, sessionId uuid.UUID, state string)
	MessageAppended(userId uuid.UUID, session *entity.ChatSession, msg *entity.ChatMessage)
}

// TurnInput is one user submission. Exactly one of Text/Audio drives the chat
// exchange; File optionally pre-processes an upload first.
type TurnInput struct {
	Text          string
	File          *responder.FileRef
	Audio         []byte
	AudioFilename string
	Lang          string
}

// TurnResult reports what the turn appended. Failed turns still return a
// result: the failure is recorded as a system message, never as an error.
type TurnResult struct {
	Session *entity.ChatSession
	Sent    *entity.ChatMessage
	Reply   *entity.ChatMessage
	Failed  bool

	Lang      string
	ModelUsed string

	// Transient audio of the spoken reply, when the turn was voice-driven.
	AudioFormat string
	AudioBytes  []byte
}

// ITurnService sequences one user turn: record input, call exactly one
// responder, commit both sides of the exchange to the session catalog.
type ITurnService interface {
	Submit(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, input *TurnInput) (*TurnResult, error)
	State(userId uuid.UUID) string
}

type turnService struct {
	sessions ISessionService
	text     responder.Text
	audio    responder.Audio
	file     responder.File
	observer TurnObserver
	log      logger.ILogger

	mu       sync.Mutex
	inflight map[uuid.UUID]bool
}

func NewTurnService(
	sessions ISessionService,
	text responder.Text,
	audio responder.Audio,
	file responder.File,
	observer TurnObserver,
	log logger.ILogger,
) ITurnService {
	return &turnService{
		sessions: sessions,
		text:     text,
		audio:    audio,
		file:     file,
		observer: observer,
		log:      log,
		inflight: make(map[uuid.UUID]bool),
	}
}

func (t *turnService) State(userId uuid.UUID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inflight[userId] {
		return constant.TurnStateAwaiting
	}
	return constant.TurnStateIdle
}

// acquire claims the user's turn slot. At most one turn may be awaiting a
// response per user; a second submit is rejected, not queued.
func (t *turnService) acquire(userId uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.inflight[userId] {
		return dto.ErrTurnInFlight
	}
	t.inflight[userId] = true
	return nil
}

func (t *turnService) release(userId uuid.UUID) {
	t.mu.Lock()
	delete(t.inflight, userId)
	t.mu.Unlock()
}

func (t *turnService) Submit(ctx context.Context, userId uuid.UUID, sessionId *uuid.UUID, input *TurnInput) (*TurnResult, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" && input.File == nil && len(input.Audio) == 0 {
		return nil, dto.ErrEmptyTurnInput
	}

	// "auto" is a client hint, not a language: responders detect the real
	// language themselves, and the record never stores the placeholder.
	lang := input.Lang
	if lang == "auto" {
		lang = ""
	}

	if err := t.acquire(userId); err != nil {
		return nil, err
	}
	defer t.release(userId)

	// Resolve the target session: an explicit id must exist; otherwise the
	// active session is used, created on demand.
	var session *entity.ChatSession
	if sessionId != nil {
		session = t.sessions.GetSession(ctx, userId, *sessionId)
		if session == nil {
			return nil, dto.ErrSessionNotFound
		}
		t.sessions.SetActiveSession(ctx, userId, *sessionId)
	} else {
		session = t.sessions.GetActiveSession(ctx, userId)
		if session == nil {
			created, err := t.sessions.CreateSession(ctx, userId)
			if err != nil {
				return nil, err
			}
			session = created
		}
	}

	sctx := responder.SessionContext{
		UserId:    userId,
		SessionId: session.Id,
		Lang:      lang,
		History:   historyOf(session),
	}

	result := &TurnResult{Session: session, Lang: lang}

	// File pre-processing runs before anything is appended; its failure ends
	// the turn and the chat responder is never invoked.
	if input.File != nil {
		fileRes, err := t.file.Send(ctx, input.File, sctx)
		if err != nil {
			return t.fail(ctx, userId, session, result, "File upload failed: "+friendlyMessage(err), err)
		}
		summary := fmt.Sprintf("File uploaded: %s (%d chunks)", fileRes.Name, fileRes.Chunks)
		sysMsg, err := t.sessions.AppendMessage(ctx, userId, session.Id, constant.ChatMessageRoleSystem, summary)
		if err != nil {
			return nil, err
		}
		t.notifyMessage(userId, session, sysMsg)
	}

	if text != "" {
		sent, err := t.sessions.AppendMessage(ctx, userId, session.Id, constant.ChatMessageRoleUser, text, WithLang(lang))
		if err != nil {
			return nil, err
		}
		result.Sent = sent
		t.notifyMessage(userId, session, sent)
	}

	switch {
	case len(input.Audio) > 0:
		t.notifyState(userId, session.Id, constant.TurnStateAwaiting)
		audioRes, err := t.audio.Send(ctx, input.Audio, sctx)
		if err != nil {
			return t.fail(ctx, userId, session, result, "Sorry, I couldn't process that recording. "+friendlyMessage(err), err)
		}

		sent, err := t.sessions.AppendMessage(ctx, userId, session.Id, constant.ChatMessageRoleUser, audioRes.UserText, WithLang(audioRes.Lang))
		if err != nil {
			return nil, err
		}
		result.Sent = sent
		t.notifyMessage(userId, session, sent)

		reply, err := t.sessions.AppendMessage(ctx, userId, session.Id, constant.ChatMessageRoleAssistant, audioRes.AssistantText,
			WithLang(audioRes.Lang), WithModelUsed(audioRes.ModelUsed), WithAudioRef(audioRes.AudioRef))
		if err != nil {
			return nil, err
		}
		result.Reply = reply
		result.Lang = audioRes.Lang
		result.ModelUsed = audioRes.ModelUsed
		result.AudioFormat = audioRes.AudioFormat
		result.AudioBytes = audioRes.AudioBytes
		t.notifyMessage(userId, session, reply)

	case text != "":
		t.notifyState(userId, session.Id, constant.TurnStateAwaiting)
		textRes, err := t.text.Send(ctx, text, sctx)
		if err != nil {
			return t.fail(ctx, userId, session, result, "Sorry, I couldn't get a response. "+friendlyMessage(err), err)
		}

		reply, err := t.sessions.AppendMessage(ctx, userId, session.Id, constant.ChatMessageRoleAssistant, textRes.Content,
			WithLang(lang), WithModelUsed(textRes.ModelUsed))
		if err != nil {
			return nil, err
		}
		result.Reply = reply
		result.ModelUsed = textRes.ModelUsed
		t.notifyMessage(userId, session, reply)
	}

	t.notifyState(userId, session.Id, constant.TurnStateIdle)

	// Re-read so the result carries the committed record: derived title and
	// every message this turn appended.
	result.Session = t.sessions.GetSession(ctx, userId, session.Id)
	return result, nil
}

// fail records a responder failure as exactly one system message and returns
// the turn to idle. Responder errors never escape Submit.
func (t *turnService) fail(ctx context.Context, userId uuid.UUID, session *entity.ChatSession, result *TurnResult, message string, cause error) (*TurnResult, error) {
	t.log.Warn("TurnService", "Turn failed", map[string]interface{}{
		"user_id":    userId,
		"session_id": session.Id,
		"error":      cause.Error(),
	})

	sysMsg, err := t.sessions.AppendMessage(ctx, userId, session.Id, constant.ChatMessageRoleSystem, message)
	if err != nil {
		return nil, err
	}
	t.notifyMessage(userId, session, sysMsg)
	t.notifyState(userId, session.Id, constant.TurnStateIdle)

	result.Reply = sysMsg
	result.Failed = true
	result.Session = t.sessions.GetSession(ctx, userId, session.Id)
	return result, nil
}

func (t *turnService) notifyState(userId, sessionId uuid.UUID, state string) {
	if t.observer != nil {
		t.observer.TurnStateChanged(userId, sessionId, state)
	}
}

func (t *turnService) notifyMessage(userId uuid.UUID, session *entity.ChatSession, msg *entity.ChatMessage) {
	if t.observer != nil {
		t.observer.MessageAppended(userId, session, msg)
	}
}

// friendlyMessage extracts the user-facing description of a responder
// failure; raw transport errors never reach the session record.
func friendlyMessage(err error) string {
	if re, ok := responder.AsError(err); ok {
		return re.Message
	}
	return "The assistant is unavailable right now."
}

// historyOf maps the session's record into provider-agnostic history.
// System messages are bookkeeping, not conversation.
func historyOf(session *entity.ChatSession) []responder.HistoryEntry {
	history := make([]responder.HistoryEntry, 0, len(session.Messages))
	for _, m := range session.Messages {
		if m.Role == constant.ChatMessageRoleSystem {
			continue
		}
		history = append(history, responder.HistoryEntry{Role: m.Role, Content: m.Content})
	}
	return history
}
