package service

import (
	"context"

	"ai-assistant-be/internal/entity"
	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/events"

	"github.com/google/uuid"
)

// eventTurnObserver turns orchestrator callbacks into bus events. Publish
// failures are logged and dropped; notifications must never stall a turn.
type eventTurnObserver struct {
	publisher IPublisherService
	log       logger.ILogger
}

func NewEventTurnObserver(publisher IPublisherService, log logger.ILogger) TurnObserver {
	return &eventTurnObserver{
		publisher: publisher,
		log:       log,
	}
}

func (o *eventTurnObserver) TurnStateChanged(userId, sessionId uuid.UUID, state string) {
	evt := events.NewTurnStateEvent(userId, sessionId, state)
	if err := o.publisher.Publish(context.Background(), evt); err != nil {
		o.log.Warn("TurnObserver", "Failed to publish turn state event", map[string]interface{}{
			"user_id": userId,
			"state":   state,
			"error":   err.Error(),
		})
	}
}

func (o *eventTurnObserver) MessageAppended(userId uuid.UUID, session *entity.ChatSession, msg *entity.ChatMessage) {
	payload := map[string]interface{}{
		"id":         msg.Id.String(),
		"role":       msg.Role,
		"content":    msg.Content,
		"created_at": msg.CreatedAt,
	}
	if msg.Lang != "" {
		payload["lang"] = msg.Lang
	}
	if msg.ModelUsed != "" {
		payload["model_used"] = msg.ModelUsed
	}
	if msg.AudioRef != "" {
		payload["audio_ref"] = msg.AudioRef
	}

	evt := events.NewChatMessageEvent(userId, session.Id, payload)
	if err := o.publisher.Publish(context.Background(), evt); err != nil {
		o.log.Warn("TurnObserver", "Failed to publish chat message event", map[string]interface{}{
			"user_id":    userId,
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}
