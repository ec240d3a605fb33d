package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResendLimiter throttles confirmation-code dispatches per email address.
type ResendLimiter interface {
	Allow(ctx context.Context, email string) bool
}

// RedisResendLimiter enforces the throttle across instances with a SETNX
// key per address. Redis being unreachable fails open: throttling is an
// anti-abuse measure, not a correctness requirement.
type RedisResendLimiter struct {
	client   *redis.Client
	interval time.Duration
	logger   *slog.Logger
}

func NewRedisResendLimiter(redisURL, password string, interval time.Duration, logger *slog.Logger) (*RedisResendLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	return &RedisResendLimiter{
		client:   redis.NewClient(opts),
		interval: interval,
		logger:   logger,
	}, nil
}

func (l *RedisResendLimiter) Allow(ctx context.Context, email string) bool {
	ok, err := l.client.SetNX(ctx, "signup:resend:"+email, 1, l.interval).Result()
	if err != nil {
		l.logger.Warn("resend throttle unavailable, allowing", "error", err)
		return true
	}
	return ok
}

// Unlimited never throttles. Used in tests.
type Unlimited struct{}

func (Unlimited) Allow(ctx context.Context, email string) bool { return true }
