package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the optional Redis alert queue.
type Config struct {
	// Address is the redis host:port. Empty disables the queue.
	Address string `mapstructure:"address" default:""`
	// Password is the redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database index.
	DB int `mapstructure:"db" default:"0"`
	// Name is the redis list holding pending alert ids.
	Name string `mapstructure:"name" default:"duomonitor:alerts"`
	// BlockSeconds is how long a consumer blocks waiting for work.
	BlockSeconds int `mapstructure:"block_seconds" default:"5"`
}

// Enabled reports whether a queue address is configured.
func (c Config) Enabled() bool {
	return c.Address != ""
}

// Handler processes a single alert id taken from the queue.
type Handler func(ctx context.Context, alertID string) error

// Queue is a Redis list backed work queue for alert ids.
type Queue struct {
	client *redis.Client
	name   string
	wait   time.Duration
}

// New connects to Redis and returns a queue instance.
func New(cfg Config) (*Queue, error) {
	if cfg.Address == "" {
		return nil, errors.New("queue address is empty")
	}
	name := cfg.Name
	if name == "" {
		name = "duomonitor:alerts"
	}
	wait := time.Duration(cfg.BlockSeconds) * time.Second
	if wait <= 0 {
		wait = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Queue{client: client, name: name, wait: wait}, nil
}

// Publish pushes an alert id onto the queue.
func (q *Queue) Publish(ctx context.Context, alertID string) error {
	if err := q.client.LPush(ctx, q.name, alertID).Err(); err != nil {
		return fmt.Errorf("failed to publish alert: %w", err)
	}
	return nil
}

// Consume pops alert ids via BRPOP and hands them to the handler until the
// context is cancelled. A handler failure requeues the id.
func (q *Queue) Consume(ctx context.Context, handler Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		values, err := q.client.BRPop(ctx, q.wait, q.name).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, redis.ErrClosed) {
				return err
			}
			if err == redis.Nil {
				continue
			}
			return fmt.Errorf("failed to pop alert: %w", err)
		}
		if len(values) != 2 {
			continue
		}
		alertID := values[1]
		if handlerErr := handler(ctx, alertID); handlerErr != nil {
			_ = q.client.RPush(ctx, q.name, alertID).Err()
		}
	}
}

// Close closes the Redis connection.
func (q *Queue) Close() error {
	if q == nil || q.client == nil {
		return nil
	}
	return q.client.Close()
}
