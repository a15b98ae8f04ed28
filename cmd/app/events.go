package main

import (
	"context"
	"errors"
	"fmt"

	"courseapi/internal/config"
	"courseapi/internal/pgmq"
	"courseapi/internal/pubsub"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// newPublisher returns the configured course event publisher, or nil when
// events are disabled. The returned close func is always safe to call.
func newPublisher(ctx context.Context, db *bun.DB) (pubsub.Publisher, func(), error) {
	noop := func() {}
	if !cfg.EventsEnabled() {
		return nil, noop, nil
	}

	switch cfg.EventsBackend {
	case config.BackendPGMQ:
		if db.Dialect().Name() != dialect.PG {
			return nil, noop, errors.New("the pgmq events backend requires a postgres DATABASE_URL")
		}
		log.Info().Str("queue", cfg.CourseEventsTopic).Msg("Publishing course events to pgmq")
		return pgmq.New(db), noop, nil
	default:
		p, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("topic", cfg.CourseEventsTopic).Msg("Publishing course events to Pub/Sub")
		return p, func() {
			if err := p.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close Pub/Sub client")
			}
		}, nil
	}
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Course event commands",
}

var eventsSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the course events topic or queue",
	Long: `Creates COURSE_EVENTS_TOPIC for the configured EVENTS_BACKEND when missing.
For pubsub a pull subscription "<topic>-sub" is created as well; PUBSUB_EMULATOR_HOST
is honoured for local development.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if !cfg.EventsEnabled() {
			return errors.New("COURSE_EVENTS_TOPIC is not set")
		}

		switch cfg.EventsBackend {
		case config.BackendPGMQ:
			db, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := pgmq.New(db).CreateQueue(ctx, cfg.CourseEventsTopic); err != nil {
				return err
			}
		default:
			p, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID)
			if err != nil {
				return err
			}
			defer p.Close()
			if err := p.EnsureTopic(ctx, cfg.CourseEventsTopic, log); err != nil {
				return fmt.Errorf("pub/sub setup: %w", err)
			}
		}
		log.Info().Str("backend", cfg.EventsBackend).Msg("Course events setup complete")
		return nil
	},
}

func init() {
	eventsCmd.AddCommand(eventsSetupCmd)
}
