// Package redis backs the credential store with Redis so that a session
// outlives the shell process and can be picked up by another shell bound to
// the same session name.
//
// Redis holds nothing but the bearer credential here, one key per session
// name (see CredentialBackend). The client built by Connect is shared with
// the readiness probe, which pings it on GET /health/ready.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// Config selects the Redis server and database the credential lives in
// (REDIS_ADDR, REDIS_DB).
type Config struct {
	Addr        string
	DB          int
	DialTimeout time.Duration
}

// Connect builds a client and refuses to return it until a ping succeeds,
// so a shell configured for the redis backend fails at startup rather than
// on the first login.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
