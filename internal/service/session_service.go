package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"ai-assistant-be/internal/constant"
	"ai-assistant-be/internal/dto"
	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
)

// MessageOption sets optional fields on a message being appended.
type MessageOption func(*entity.ChatMessage)

func WithLang(lang string) MessageOption {
	return func(m *entity.ChatMessage) {
		m.Lang = lang
	}
}

func WithModelUsed(model string) MessageOption {
	return func(m *entity.ChatMessage) {
		m.ModelUsed = model
	}
}

func WithAudioRef(ref string) MessageOption {
	return func(m *entity.ChatMessage) {
		m.AudioRef = ref
	}
}

// ISessionService owns every user's session catalog: the in-memory state is
// authoritative, and each mutation is written through to the key-value store
// before the call returns.
type ISessionService interface {
	CreateSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error)
	GetSession(ctx context.Context, userId, sessionId uuid.UUID) *entity.ChatSession
	GetActiveSession(ctx context.Context, userId uuid.UUID) *entity.ChatSession
	SetActiveSession(ctx context.Context, userId, sessionId uuid.UUID)
	AppendMessage(ctx context.Context, userId, sessionId uuid.UUID, role, content string, opts ...MessageOption) (*entity.ChatMessage, error)
	ListSessions(ctx context.Context, userId uuid.UUID) []*entity.ChatSession
}

type sessionService struct {
	kv  contract.KeyValueStore
	log logger.ILogger

	mu       sync.Mutex
	catalogs map[uuid.UUID]*entity.SessionCatalog
}

func NewSessionService(kv contract.KeyValueStore, log logger.ILogger) ISessionService {
	return &sessionService{
		kv:       kv,
		log:      log,
		catalogs: make(map[uuid.UUID]*entity.SessionCatalog),
	}
}

func catalogKey(userId uuid.UUID) string {
	return fmt.Sprintf("catalog:%s", userId)
}

// snapshotSession copies a session so callers can read it outside s.mu while
// the catalog keeps mutating. Messages are immutable once appended, so only
// the struct and the slice header are copied, not the messages themselves.
func snapshotSession(s *entity.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	out := *s
	out.Messages = append([]*entity.ChatMessage(nil), s.Messages...)
	return &out
}

// catalogFor loads a user's catalog on first touch. Unparsable stored data is
// treated as an empty catalog (fail-open), never as an error.
// Caller must hold s.mu.
func (s *sessionService) catalogFor(ctx context.Context, userId uuid.UUID) *entity.SessionCatalog {
	if c, ok := s.catalogs[userId]; ok {
		return c
	}

	catalog := &entity.SessionCatalog{Sessions: []*entity.ChatSession{}}
	if raw, found := s.kv.Get(ctx, catalogKey(userId)); found {
		var stored entity.SessionCatalog
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			s.log.Warn("SessionService", "Corrupt catalog in storage, starting empty", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		} else {
			catalog = &stored
			if catalog.Sessions == nil {
				catalog.Sessions = []*entity.ChatSession{}
			}
		}
	}

	s.catalogs[userId] = catalog
	return catalog
}

// persist writes the whole catalog through to storage. Write failures are
// logged and swallowed: in-memory state stays authoritative for this process.
// Caller must hold s.mu.
func (s *sessionService) persist(ctx context.Context, userId uuid.UUID, catalog *entity.SessionCatalog) {
	raw, err := json.Marshal(catalog)
	if err != nil {
		s.log.Error("SessionService", "Failed to marshal catalog", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
		return
	}
	if err := s.kv.Set(ctx, catalogKey(userId), string(raw)); err != nil {
		s.log.Warn("SessionService", "Failed to persist catalog", map[string]interface{}{
			"user_id": userId,
			"error":   err.Error(),
		})
	}
}

func (s *sessionService) CreateSession(ctx context.Context, userId uuid.UUID) (*entity.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.catalogFor(ctx, userId)

	now := time.Now()
	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     constant.ChatSessionDefaultTitle,
		Messages:  []*entity.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Most-recent-first: new sessions go to the front.
	catalog.Sessions = append([]*entity.ChatSession{session}, catalog.Sessions...)
	id := session.Id
	catalog.ActiveSessionId = &id

	s.persist(ctx, userId, catalog)
	return snapshotSession(session), nil
}

func (s *sessionService) GetSession(ctx context.Context, userId, sessionId uuid.UUID) *entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshotSession(s.catalogFor(ctx, userId).FindSession(sessionId))
}

func (s *sessionService) GetActiveSession(ctx context.Context, userId uuid.UUID) *entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.catalogFor(ctx, userId)
	if catalog.ActiveSessionId == nil {
		return nil
	}
	return snapshotSession(catalog.FindSession(*catalog.ActiveSessionId))
}

// SetActiveSession ignores ids that are not in the catalog.
func (s *sessionService) SetActiveSession(ctx context.Context, userId, sessionId uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.catalogFor(ctx, userId)
	if catalog.FindSession(sessionId) == nil {
		return
	}
	id := sessionId
	catalog.ActiveSessionId = &id
	s.persist(ctx, userId, catalog)
}

func (s *sessionService) AppendMessage(ctx context.Context, userId, sessionId uuid.UUID, role, content string, opts ...MessageOption) (*entity.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.catalogFor(ctx, userId)
	session := catalog.FindSession(sessionId)
	if session == nil {
		return nil, dto.ErrSessionNotFound
	}

	msg := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(msg)
	}

	firstMessage := len(session.Messages) == 0
	session.Messages = append(session.Messages, msg)
	session.UpdatedAt = msg.CreatedAt

	// The title is derived exactly once, from the first message ever appended.
	if firstMessage && session.Title == constant.ChatSessionDefaultTitle {
		session.Title = deriveTitle(content)
	}

	s.persist(ctx, userId, catalog)
	return msg, nil
}

// ListSessions returns sessions most-recently-updated first.
func (s *sessionService) ListSessions(ctx context.Context, userId uuid.UUID) []*entity.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	catalog := s.catalogFor(ctx, userId)
	sessions := make([]*entity.ChatSession, len(catalog.Sessions))
	for i, sess := range catalog.Sessions {
		sessions[i] = snapshotSession(sess)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions
}

func deriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.ChatSessionTitleMaxLen {
		return content
	}
	return string(runes[:constant.ChatSessionTitleMaxLen]) + constant.ChatSessionTitleEllipsis
}
