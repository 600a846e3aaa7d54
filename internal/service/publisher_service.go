package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// eventEnvelope is the wire form of an event on the in-process bus. Origin
// identifies the publishing instance so cross-instance bridges can skip their
// own messages.
type eventEnvelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
	Origin     string                 `json:"origin,omitempty"`
}

type IPublisherService interface {
	Publish(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	origin    string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName, origin string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		origin:    origin,
		pubSub:    pubSub,
	}
}

func (p *publisherService) Publish(_ context.Context, event events.Event) error {
	payload, err := json.Marshal(eventEnvelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
		Origin:     p.origin,
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	return p.pubSub.Publish(p.topicName, msg)
}
