package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// LoginLimiter counts failed logins per email in a fixed window. The window
// starts at the first failure and is not extended by later ones.
type LoginLimiter struct {
	client      *redisv9.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(client *redisv9.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

func (l *LoginLimiter) Allow(ctx context.Context, email string) (bool, error) {
	count, err := l.client.Get(ctx, l.key(email)).Int()
	if err == redisv9.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get login attempts failed: %w", err)
	}
	return count < l.maxAttempts, nil
}

func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	key := l.key(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("redis incr login failures failed: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("redis expire login failures failed: %w", err)
		}
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("redis reset login attempts failed: %w", err)
	}
	return nil
}

func (l *LoginLimiter) key(email string) string {
	return fmt.Sprintf("auth:login:failures:%s", email)
}
