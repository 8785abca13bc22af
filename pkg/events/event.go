package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published on the internal bus.
const (
	TypeFeedbackRecorded = "FEEDBACK_RECORDED"
	TypeTaskScheduled    = "TASK_SCHEDULED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "FEEDBACK_RECORDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewFeedbackRecorded builds the event emitted when a user rates an answer.
func NewFeedbackRecorded(userID string, positive bool, cumulativeScore float64) Event {
	return BaseEvent{
		Type: TypeFeedbackRecorded,
		Data: map[string]interface{}{
			"event_id":         uuid.NewString(),
			"user_id":          userID,
			"positive":         positive,
			"cumulative_score": cumulativeScore,
		},
		OccurredAt: time.Now(),
	}
}

// NewTaskScheduled builds the event emitted when a chat turn books a task.
func NewTaskScheduled(userID, title, when string) Event {
	return BaseEvent{
		Type: TypeTaskScheduled,
		Data: map[string]interface{}{
			"event_id": uuid.NewString(),
			"user_id":  userID,
			"title":    title,
			"when":     when,
		},
		OccurredAt: time.Now(),
	}
}
