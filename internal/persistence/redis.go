package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-tracker/internal/config"
	"github.com/spec-kit/employee-tracker/internal/events"
)

// Redis wraps the go-redis client used for the audit stream.
type Redis struct {
	Client *redis.Client
	stream string
}

// NewRedis returns nil when no address is configured. An unreachable server
// is only logged; appends will fail and be reported per event.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	if cfg.Addr == "" {
		logger.Debug("REDIS_ADDR not provided; audit stream disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("stream", cfg.Stream))
	}

	return &Redis{Client: client, stream: cfg.Stream}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// Append writes the event as one entry of the audit stream.
func (r *Redis) Append(ctx context.Context, event events.Event) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", event.Type, err)
	}

	return r.Client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"id":        event.ID,
			"type":      string(event.Type),
			"entity_id": event.EntityID,
			"timestamp": event.Timestamp.Format(time.RFC3339Nano),
			"payload":   string(payload),
		},
	}).Err()
}
