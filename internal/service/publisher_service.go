package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-concierge-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	Publish(ctx context.Context, evt events.Event) error
}

type publisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topicName string) IPublisherService {
	return &publisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (ps *publisherService) Publish(ctx context.Context, evt events.Event) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type":        evt.EventType(),
		"data":        evt.Payload(),
		"occurred_at": evt.Timestamp(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		log.Printf("[ERROR] Failed to publish %s event: %v", evt.EventType(), err)
		return err
	}
	return nil
}
