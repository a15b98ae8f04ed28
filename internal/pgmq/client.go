package pgmq

import (
	"context"
	"fmt"
	"strconv"

	"github.com/uptrace/bun"
)

// Client publishes course events to a pgmq queue in the application's own
// Postgres database. The pgmq extension must be installed.
type Client struct {
	db bun.IDB
}

// New returns a new PGMQ client backed by the given DB connection.
func New(db bun.IDB) *Client {
	return &Client{db: db}
}

// CreateQueue creates the queue if it does not exist. pgmq.create is
// idempotent.
func (c *Client) CreateQueue(ctx context.Context, queue string) error {
	if _, err := c.db.ExecContext(ctx, "SELECT pgmq.create(?)", queue); err != nil {
		return fmt.Errorf("pgmq create failed: %w", err)
	}
	return nil
}

// Publish pushes a JSON payload into the queue and returns the message id.
// pgmq has no message attributes, so attrs are dropped; course events carry
// their type in the payload.
func (c *Client) Publish(ctx context.Context, queue string, payload []byte, _ map[string]string) (string, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, "SELECT pgmq.send(?, ?::jsonb)", queue, string(payload)).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("pgmq send failed: %w", err)
	}
	return strconv.FormatInt(id, 10), nil
}
