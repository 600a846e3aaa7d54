package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/repository/memory"
	"ai-assistant-be/pkg/responder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubText struct {
	fn func(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error)
}

func (s *stubText) Send(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error) {
	return s.fn(ctx, text, sctx)
}

type stubAudio struct {
	fn func(ctx context.Context, audio []byte, sctx responder.SessionContext) (*responder.AudioResult, error)
}

func (s *stubAudio) Send(ctx context.Context, audio []byte, sctx responder.SessionContext) (*responder.AudioResult, error) {
	return s.fn(ctx, audio, sctx)
}

type stubFile struct {
	fn func(ctx context.Context, ref *responder.FileRef, sctx responder.SessionContext) (*responder.FileResult, error)
}

func (s *stubFile) Send(ctx context.Context, ref *responder.FileRef, sctx responder.SessionContext) (*responder.FileResult, error) {
	return s.fn(ctx, ref, sctx)
}

// recordingObserver collects notifications for assertions.
type recordingObserver struct {
	mu       sync.Mutex
	states   []string
	messages []*entity.ChatMessage
}

func (o *recordingObserver) TurnStateChanged(userId, sessionId uuid.UUID, state string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = append(o.states, state)
}

func (o *recordingObserver) MessageAppended(userId uuid.UUID, session *entity.ChatSession, msg *entity.ChatMessage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, msg)
}

func okText(reply string) *stubText {
	return &stubText{fn: func(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error) {
		return &responder.TextResult{Content: reply, ModelUsed: "heavy"}, nil
	}}
}

func newTurnFixture(text responder.Text, audio responder.Audio, file responder.File) (ITurnService, ISessionService, *recordingObserver) {
	sessions := NewSessionService(memory.NewKeyValueStore(), nopLogger{})
	observer := &recordingObserver{}
	turns := NewTurnService(sessions, text, audio, file, observer, nopLogger{})
	return turns, sessions, observer
}

func TestSubmitTextSuccess(t *testing.T) {
	turns, sessions, observer := newTurnFixture(okText("Hi there"), nil, nil)
	userId := uuid.New()

	result, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "Hello"})
	assert.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, "Hello", result.Sent.Content)
	assert.Equal(t, "Hi there", result.Reply.Content)
	assert.Equal(t, "heavy", result.ModelUsed)

	// The returned session reflects the committed turn, not the pre-turn view.
	assert.Equal(t, "Hello", result.Session.Title)
	assert.Len(t, result.Session.Messages, 2)

	// The session was created on demand and holds both sides of the exchange.
	session := sessions.GetSession(context.Background(), userId, result.Session.Id)
	assert.NotNil(t, session)
	assert.Len(t, session.Messages, 2)
	assert.Equal(t, constant.ChatMessageRoleUser, session.Messages[0].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, session.Messages[1].Role)
	assert.Equal(t, "Hello", session.Title)

	assert.Equal(t, []string{constant.TurnStateAwaiting, constant.TurnStateIdle}, observer.states)
	assert.Len(t, observer.messages, 2)
}

func TestSubmitAutoLangIsNotRecorded(t *testing.T) {
	turns, sessions, _ := newTurnFixture(okText("Hi there"), nil, nil)
	userId := uuid.New()

	result, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "Hello", Lang: "auto"})
	assert.NoError(t, err)
	assert.Empty(t, result.Lang)

	session := sessions.GetSession(context.Background(), userId, result.Session.Id)
	for _, m := range session.Messages {
		assert.NotEqual(t, "auto", m.Lang)
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	turns, _, _ := newTurnFixture(okText("unused"), nil, nil)

	_, err := turns.Submit(context.Background(), uuid.New(), nil, &TurnInput{Text: "   "})
	assert.ErrorIs(t, err, dto.ErrEmptyTurnInput)
}

func TestSubmitUnknownSession(t *testing.T) {
	turns, _, _ := newTurnFixture(okText("unused"), nil, nil)
	missing := uuid.New()

	_, err := turns.Submit(context.Background(), uuid.New(), &missing, &TurnInput{Text: "Hello"})
	assert.ErrorIs(t, err, dto.ErrSessionNotFound)
}

func TestSubmitResponderFailureRecordsSystemMessage(t *testing.T) {
	failing := &stubText{fn: func(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error) {
		return nil, responder.NewError("text-chat", "The assistant could not produce a reply.", errors.New("boom"))
	}}
	turns, sessions, observer := newTurnFixture(failing, nil, nil)
	userId := uuid.New()

	result, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "Hello"})
	assert.NoError(t, err)
	assert.True(t, result.Failed)
	assert.Equal(t, constant.ChatMessageRoleSystem, result.Reply.Role)
	assert.Contains(t, result.Reply.Content, "The assistant could not produce a reply.")

	session := sessions.GetSession(context.Background(), userId, result.Session.Id)
	assert.Len(t, session.Messages, 2) // user text + exactly one system message
	assert.Equal(t, constant.ChatMessageRoleSystem, session.Messages[1].Role)
	assert.Equal(t, []string{constant.TurnStateAwaiting, constant.TurnStateIdle}, observer.states)
}

func TestSubmitRecoversAfterFailure(t *testing.T) {
	calls := 0
	flaky := &stubText{fn: func(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error) {
		calls++
		if calls == 1 {
			return nil, responder.NewError("text-chat", "down", errors.New("down"))
		}
		return &responder.TextResult{Content: "back up", ModelUsed: "heavy"}, nil
	}}
	turns, _, _ := newTurnFixture(flaky, nil, nil)
	userId := uuid.New()

	first, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "one"})
	assert.NoError(t, err)
	assert.True(t, first.Failed)

	second, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "two"})
	assert.NoError(t, err)
	assert.False(t, second.Failed)
	assert.Equal(t, "back up", second.Reply.Content)
}

func TestSubmitRejectsConcurrentTurn(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	blocking := &stubText{fn: func(ctx context.Context, text string, sctx responder.SessionContext) (*responder.TextResult, error) {
		close(started)
		<-release
		return &responder.TextResult{Content: "done", ModelUsed: "heavy"}, nil
	}}
	turns, _, _ := newTurnFixture(blocking, nil, nil)
	userId := uuid.New()

	done := make(chan error, 1)
	go func() {
		_, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "slow"})
		done <- err
	}()

	<-started
	assert.Equal(t, constant.TurnStateAwaiting, turns.State(userId))

	_, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Text: "too fast"})
	assert.ErrorIs(t, err, dto.ErrTurnInFlight)

	close(release)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("first turn never finished")
	}
	assert.Equal(t, constant.TurnStateIdle, turns.State(userId))
}

func TestSubmitFileFailureAbortsTurn(t *testing.T) {
	failingFile := &stubFile{fn: func(ctx context.Context, ref *responder.FileRef, sctx responder.SessionContext) (*responder.FileResult, error) {
		return nil, responder.NewError("file", "Could not read notes.txt: unsupported or empty file.", errors.New("parse"))
	}}
	textCalled := false
	text := &stubText{fn: func(ctx context.Context, s string, sctx responder.SessionContext) (*responder.TextResult, error) {
		textCalled = true
		return &responder.TextResult{Content: "unused"}, nil
	}}
	turns, sessions, _ := newTurnFixture(text, nil, failingFile)
	userId := uuid.New()

	result, err := turns.Submit(context.Background(), userId, nil, &TurnInput{
		Text: "summarize this",
		File: &responder.FileRef{Name: "notes.txt", Data: []byte("x")},
	})
	assert.NoError(t, err)
	assert.True(t, result.Failed)
	assert.False(t, textCalled)

	session := sessions.GetSession(context.Background(), userId, result.Session.Id)
	assert.Len(t, session.Messages, 1)
	assert.Equal(t, constant.ChatMessageRoleSystem, session.Messages[0].Role)
	assert.Contains(t, session.Messages[0].Content, "File upload failed")
}

func TestSubmitFileThenText(t *testing.T) {
	file := &stubFile{fn: func(ctx context.Context, ref *responder.FileRef, sctx responder.SessionContext) (*responder.FileResult, error) {
		return &responder.FileResult{DocumentId: uuid.New(), Name: ref.Name, Chunks: 3}, nil
	}}
	turns, sessions, _ := newTurnFixture(okText("Summary ready"), nil, file)
	userId := uuid.New()

	result, err := turns.Submit(context.Background(), userId, nil, &TurnInput{
		Text: "summarize this",
		File: &responder.FileRef{Name: "notes.txt", Data: []byte("x")},
	})
	assert.NoError(t, err)
	assert.False(t, result.Failed)

	session := sessions.GetSession(context.Background(), userId, result.Session.Id)
	assert.Len(t, session.Messages, 3)
	assert.Equal(t, constant.ChatMessageRoleSystem, session.Messages[0].Role)
	assert.Contains(t, session.Messages[0].Content, "notes.txt")
	assert.Equal(t, constant.ChatMessageRoleUser, session.Messages[1].Role)
	assert.Equal(t, constant.ChatMessageRoleAssistant, session.Messages[2].Role)
}

func TestSubmitAudioTurn(t *testing.T) {
	audio := &stubAudio{fn: func(ctx context.Context, data []byte, sctx responder.SessionContext) (*responder.AudioResult, error) {
		return &responder.AudioResult{
			UserText:      "namaste",
			AssistantText: "namaste, kaise madad karun?",
			Lang:          "hi",
			ModelUsed:     "light",
			AudioRef:      "reply.wav",
			AudioFormat:   "wav",
			AudioBytes:    []byte("RIFF"),
		}, nil
	}}
	turns, sessions, _ := newTurnFixture(okText("unused"), audio, nil)
	userId := uuid.New()

	result, err := turns.Submit(context.Background(), userId, nil, &TurnInput{Audio: []byte{1, 2, 3}})
	assert.NoError(t, err)
	assert.False(t, result.Failed)
	assert.Equal(t, "hi", result.Lang)
	assert.Equal(t, "light", result.ModelUsed)
	assert.Equal(t, []byte("RIFF"), result.AudioBytes)

	session := sessions.GetSession(context.Background(), userId, result.Session.Id)
	assert.Len(t, session.Messages, 2)
	assert.Equal(t, "namaste", session.Messages[0].Content)
	assert.Equal(t, "reply.wav", session.Messages[1].AudioRef)
	assert.Equal(t, "hi", session.Messages[1].Lang)
}
