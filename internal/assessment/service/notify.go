package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	newsletterQueueKey = "growth:newsletter:queue"
	alertChannel       = "growth:alerts"
)

// Notifier is the fire-and-forget downstream contract: failures are logged
// by the caller, never surfaced and never retried here.
type Notifier interface {
	SubscribeNewsletter(ctx context.Context, email, list string) error
	PostAlert(ctx context.Context, message string) error
}

// RedisNotifier hands notifications to the workers listening on redis: the
// newsletter queue is drained by the mailer, alerts go out on pub/sub.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) SubscribeNewsletter(ctx context.Context, email, list string) error {
	payload, err := json.Marshal(map[string]string{
		"email":     email,
		"list":      list,
		"queued_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal subscription: %w", err)
	}

	if err := n.client.LPush(ctx, newsletterQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("queue subscription: %w", err)
	}
	return nil
}

func (n *RedisNotifier) PostAlert(ctx context.Context, message string) error {
	if err := n.client.Publish(ctx, alertChannel, message).Err(); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}
