package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisDispatcher delivers events to local subscribers and mirrors them onto a
// Redis channel so other processes can follow task activity.
type RedisDispatcher struct {
	local   Dispatcher
	client  redis.UniversalClient
	channel string
	logger  *zap.Logger
}

// NewRedisDispatcher wraps local. A nil client degrades to local delivery only.
func NewRedisDispatcher(local Dispatcher, client redis.UniversalClient, channel string, logger *zap.Logger) *RedisDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDispatcher{local: local, client: client, channel: channel, logger: logger}
}

// Publish runs local handlers first, then best-effort publishes to Redis.
func (d *RedisDispatcher) Publish(ctx context.Context, event Event) error {
	if err := d.local.Publish(ctx, event); err != nil {
		return err
	}
	if d.client == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	if err := d.client.Publish(ctx, d.channel, body).Err(); err != nil {
		d.logger.Warn("redis publish failed",
			zap.String("channel", d.channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}

// Subscribe registers a local handler.
func (d *RedisDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.local.Subscribe(eventType, handler)
}
