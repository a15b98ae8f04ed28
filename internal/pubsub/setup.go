package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/rs/zerolog"
)

const retention = 7 * 24 * time.Hour

// EnsureTopic creates the course events topic and a pull subscription named
// "<topic>-sub" when they do not exist yet. Existing resources are left as
// they are.
func (p *PubSubPublisher) EnsureTopic(ctx context.Context, topicID string, logger zerolog.Logger) error {
	topic := p.client.Topic(topicID)
	ok, err := topic.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check topic %s: %w", topicID, err)
	}
	if !ok {
		logger.Info().Str("topic", topicID).Msg("Creating topic")
		if topic, err = p.client.CreateTopic(ctx, topicID); err != nil {
			return fmt.Errorf("create topic %s: %w", topicID, err)
		}
	}

	subID := topicID + "-sub"
	sub := p.client.Subscription(subID)
	ok, err = sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check subscription %s: %w", subID, err)
	}
	if ok {
		logger.Info().Str("subscription", subID).Msg("Subscription already exists")
		return nil
	}

	logger.Info().Str("subscription", subID).Msg("Creating pull subscription")
	_, err = p.client.CreateSubscription(ctx, subID, pubsub.SubscriptionConfig{
		Topic:             topic,
		AckDeadline:       60 * time.Second,
		RetentionDuration: retention,
	})
	if err != nil {
		return fmt.Errorf("create subscription %s: %w", subID, err)
	}
	return nil
}
