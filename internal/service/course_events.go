package service

import (
	"context"
	"encoding/json"
	"time"

	"courseapi/internal/model"
	"courseapi/internal/pubsub"

	"github.com/rs/zerolog"
)

// Course lifecycle event types.
const (
	CourseCreated = "course.created"
	CourseUpdated = "course.updated"
	CourseDeleted = "course.deleted"
)

// CourseEvent is the message body published after a course mutation.
type CourseEvent struct {
	Type       string    `json:"type"`
	CourseID   int64     `json:"courseId"`
	UserID     int64     `json:"userId"`
	Title      string    `json:"title"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventNotifier publishes course events. A nil *EventNotifier is a no-op.
type EventNotifier struct {
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewEventNotifier(publisher pubsub.Publisher, topic string, logger zerolog.Logger) *EventNotifier {
	return &EventNotifier{publisher: publisher, topic: topic, logger: logger, now: time.Now}
}

// Notify publishes synchronously. The mutation has already been committed, so
// a failure is logged and never surfaced to the caller.
func (n *EventNotifier) Notify(ctx context.Context, eventType string, c *model.Course) {
	if n == nil || n.publisher == nil {
		return
	}
	payload, err := json.Marshal(CourseEvent{
		Type:       eventType,
		CourseID:   c.ID,
		UserID:     c.UserID,
		Title:      c.Title,
		OccurredAt: n.now().UTC(),
	})
	if err != nil {
		n.logger.Error().Err(err).Str("event", eventType).Msg("Failed to encode course event")
		return
	}
	id, err := n.publisher.Publish(ctx, n.topic, payload, map[string]string{"type": eventType})
	if err != nil {
		n.logger.Warn().Err(err).Str("event", eventType).Int64("course_id", c.ID).Msg("Failed to publish course event")
		return
	}
	n.logger.Debug().Str("event", eventType).Str("message_id", id).Msg("Course event published")
}
