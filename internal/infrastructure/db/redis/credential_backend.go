package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aura-home/aura-client/internal/core/domain"
)

const defaultSessionTTL = 12 * time.Hour

// CredentialBackend stores the credential under aura:credential:<session>.
// The key expires after ttl, or at the token's own exp when that is sooner.
type CredentialBackend struct {
	client  redis.Cmdable
	session string
	ttl     time.Duration
	now     func() time.Time
}

func NewCredentialBackend(client redis.Cmdable, session string, ttl time.Duration) *CredentialBackend {
	if session == "" {
		session = "default"
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &CredentialBackend{client: client, session: session, ttl: ttl, now: time.Now}
}

func (b *CredentialBackend) Load(ctx context.Context) (domain.Credential, error) {
	raw, err := b.client.Get(ctx, b.key()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Credential{}, domain.ErrNoCredential
		}
		return domain.Credential{}, fmt.Errorf("redis credential load: %w", err)
	}

	var c domain.Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Credential{}, fmt.Errorf("redis credential decode: %w", err)
	}
	return c, nil
}

func (b *CredentialBackend) Save(ctx context.Context, c domain.Credential) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("redis credential encode: %w", err)
	}
	if err := b.client.Set(ctx, b.key(), raw, b.expiry(c)).Err(); err != nil {
		return fmt.Errorf("redis credential save: %w", err)
	}
	return nil
}

func (b *CredentialBackend) Delete(ctx context.Context) error {
	if err := b.client.Del(ctx, b.key()).Err(); err != nil {
		return fmt.Errorf("redis credential delete: %w", err)
	}
	return nil
}

func (b *CredentialBackend) expiry(c domain.Credential) time.Duration {
	exp, ok := c.ExpiresAt()
	if !ok {
		return b.ttl
	}
	left := exp.Sub(b.now())
	if left <= 0 {
		// Let the server reject it; a short TTL keeps the key from lingering.
		return time.Second
	}
	if left < b.ttl {
		return left
	}
	return b.ttl
}

func (b *CredentialBackend) key() string {
	return fmt.Sprintf("aura:credential:%s", b.session)
}
