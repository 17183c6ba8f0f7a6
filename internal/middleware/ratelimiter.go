package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthrec/healthcare-api/internal/config"
)

// LoginRateLimiter throttles failed login attempts per email using Redis
type LoginRateLimiter interface {
	// Allow reports whether another login attempt is permitted for the email
	Allow(ctx context.Context, email string) (bool, error)

	// RecordFailure increments the failed-attempt counter for the email
	RecordFailure(ctx context.Context, email string) error

	// Reset clears the failed-attempt counter after a successful login
	Reset(ctx context.Context, email string) error

	// Close closes the Redis connection
	Close() error
}

type redisLoginRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// NewLoginRateLimiter creates a new Redis-based login rate limiter
func NewLoginRateLimiter(cfg *config.Config, logger *slog.Logger) (LoginRateLimiter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("❌ [RateLimiter] Failed to connect to Redis", "error", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [RateLimiter] Connected to Redis",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
	)

	return &redisLoginRateLimiter{
		client: client,
		limit:  cfg.LoginRateLimit,
		window: time.Duration(cfg.LoginRateWindow) * time.Second,
		logger: logger,
	}, nil
}

// NewLoginRateLimiterWithClient creates a limiter on a provided redis client (for testing)
func NewLoginRateLimiterWithClient(client *redis.Client, cfg *config.Config, logger *slog.Logger) LoginRateLimiter {
	return &redisLoginRateLimiter{
		client: client,
		limit:  cfg.LoginRateLimit,
		window: time.Duration(cfg.LoginRateWindow) * time.Second,
		logger: logger,
	}
}

// loginKey generates the Redis key for failed login attempts
// Format: rate:login:{email}
func loginKey(email string) string {
	return fmt.Sprintf("rate:login:%s", email)
}

func (r *redisLoginRateLimiter) Allow(ctx context.Context, email string) (bool, error) {
	// A limit of 0 or less means unlimited
	if r.limit <= 0 {
		return true, nil
	}

	count, err := r.client.Get(ctx, loginKey(email)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to get attempt count", "error", err, "email", email)
		// On error, allow the request but report it
		return true, err
	}

	return count < r.limit, nil
}

func (r *redisLoginRateLimiter) RecordFailure(ctx context.Context, email string) error {
	key := loginKey(email)

	pipe := r.client.Pipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to record login failure", "error", err, "email", email)
		return err
	}

	return nil
}

func (r *redisLoginRateLimiter) Reset(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, loginKey(email)).Err(); err != nil {
		r.logger.Error("❌ [RateLimiter] Failed to reset attempt count", "error", err, "email", email)
		return err
	}
	return nil
}

func (r *redisLoginRateLimiter) Close() error {
	return r.client.Close()
}

// noOpLoginRateLimiter allows everything; used when Redis is unavailable
type noOpLoginRateLimiter struct {
	logger *slog.Logger
}

// NewNoOpLoginRateLimiter creates a limiter that never throttles
func NewNoOpLoginRateLimiter(logger *slog.Logger) LoginRateLimiter {
	logger.Warn("⚠️ [RateLimiter] Using no-op login rate limiter")
	return &noOpLoginRateLimiter{logger: logger}
}

func (n *noOpLoginRateLimiter) Allow(ctx context.Context, email string) (bool, error) {
	return true, nil
}

func (n *noOpLoginRateLimiter) RecordFailure(ctx context.Context, email string) error {
	return nil
}

func (n *noOpLoginRateLimiter) Reset(ctx context.Context, email string) error {
	return nil
}

func (n *noOpLoginRateLimiter) Close() error {
	return nil
}
