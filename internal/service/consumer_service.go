package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"ai-concierge-be/internal/pkg/logger"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
	AuditTrail() []AuditEntry
}

// AuditEntry records one event as seen on the bus.
type AuditEntry struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// consumerService keeps an in-memory audit trail of feedback and scheduling
// events so operators can inspect recent engine activity.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger

	mu      sync.RWMutex
	entries []AuditEntry
}

const auditTrailLimit = 1000

func NewConsumerService(pubSub *gochannel.GoChannel, topicName string, sysLogger logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    sysLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var entry AuditEntry
	if err := json.Unmarshal(msg.Payload, &entry); err != nil {
		cs.logger.Error("consumer", "Failed to unmarshal event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.mu.Lock()
	cs.entries = append(cs.entries, entry)
	if len(cs.entries) > auditTrailLimit {
		cs.entries = cs.entries[len(cs.entries)-auditTrailLimit:]
	}
	cs.mu.Unlock()

	cs.logger.Info("consumer", "Recorded event for audit", map[string]interface{}{"type": entry.Type})
	msg.Ack()
}

func (cs *consumerService) AuditTrail() []AuditEntry {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	out := make([]AuditEntry, len(cs.entries))
	copy(out, cs.entries)
	return out
}
