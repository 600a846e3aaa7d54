package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-assistant-be/internal/pkg/logger"
	"ai-assistant-be/pkg/events"
	pkgNats "ai-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, payload []byte)
}

// INotificationService drains the turn-event bus and fans events out to the
// connected clients of this instance, bridging over NATS when configured so
// clients attached to other instances see them too.
type INotificationService interface {
	Start(ctx context.Context) error
}

type notificationService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	instanceId string
	delivery   NotificationDelivery
	natsPub    *pkgNats.Publisher
	natsSub    *pkgNats.Subscriber
	log        logger.ILogger
}

func NewNotificationService(
	pubSub *gochannel.GoChannel,
	topicName string,
	instanceId string,
	delivery NotificationDelivery,
	natsPub *pkgNats.Publisher,
	natsSub *pkgNats.Subscriber,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		pubSub:     pubSub,
		topicName:  topicName,
		instanceId: instanceId,
		delivery:   delivery,
		natsPub:    natsPub,
		natsSub:    natsSub,
		log:        log,
	}
}

func (s *notificationService) Start(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	if s.natsSub != nil {
		// Durable per instance: every instance sees every bridged event.
		if err := s.natsSub.Subscribe("assistant.>", "delivery-"+s.instanceId, s.handleRemote); err != nil {
			s.log.Error("NotificationService", "Failed to subscribe to NATS bridge", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	s.log.Info("NotificationService", "Notification service started", map[string]interface{}{
		"topic": s.topicName,
	})
	return nil
}

func (s *notificationService) processMessage(ctx context.Context, msg *message.Message) {
	var env eventEnvelope
	if err := json.Unmarshal(msg.Payload, &env); err != nil {
		s.log.Error("NotificationService", "Failed to unmarshal bus message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages are not retriable
		return
	}

	s.deliver(env.Type, env.Data, env.OccurredAt)

	if s.natsPub != nil {
		bridged := make(map[string]interface{}, len(env.Data)+1)
		for k, v := range env.Data {
			bridged[k] = v
		}
		bridged["origin"] = s.instanceId

		evt := events.BaseEvent{Type: env.Type, Data: bridged, OccurredAt: env.OccurredAt}
		if err := s.natsPub.Publish(ctx, evt); err != nil {
			s.log.Warn("NotificationService", "Failed to bridge event to NATS", map[string]interface{}{
				"type":  env.Type,
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}

// handleRemote delivers events bridged from other instances. Events this
// instance published come back around and are skipped by origin.
func (s *notificationService) handleRemote(_ context.Context, event events.Event) error {
	data := event.Payload()
	if origin, _ := data["origin"].(string); origin == s.instanceId {
		return nil
	}
	delete(data, "origin")

	s.deliver(event.EventType(), data, event.Timestamp())
	return nil
}

func (s *notificationService) deliver(eventType string, data map[string]interface{}, occurredAt time.Time) {
	uidStr, ok := data["user_id"].(string)
	if !ok {
		s.log.Warn("NotificationService", "Event without user_id, dropping", map[string]interface{}{
			"type": eventType,
		})
		return
	}
	uid, err := uuid.Parse(uidStr)
	if err != nil {
		s.log.Warn("NotificationService", "Event with invalid user_id, dropping", map[string]interface{}{
			"type":    eventType,
			"user_id": uidStr,
		})
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":        eventType,
		"data":        data,
		"occurred_at": occurredAt,
	})
	if err != nil {
		s.log.Error("NotificationService", "Failed to marshal delivery payload", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
		return
	}

	s.delivery.Send(uid, payload)
}
