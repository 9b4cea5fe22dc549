package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aura-home/aura-client/internal/core/domain"
)

func TestCredentialBackend_Key(t *testing.T) {
	b := NewCredentialBackend(nil, "", 0)
	if got := b.key(); got != "aura:credential:default" {
		t.Fatalf("unexpected key %q", got)
	}
	b = NewCredentialBackend(nil, "tab-7", time.Hour)
	if got := b.key(); got != "aura:credential:tab-7" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestCredentialBackend_ExpiryFollowsToken(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewCredentialBackend(nil, "s", 12*time.Hour)
	b.now = func() time.Time { return now }

	sign := func(exp time.Time) domain.Credential {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return domain.Credential{AccessToken: tok}
	}

	if got := b.expiry(domain.Credential{AccessToken: "opaque"}); got != 12*time.Hour {
		t.Fatalf("opaque token should use ttl, got %v", got)
	}
	if got := b.expiry(sign(now.Add(time.Hour))); got != time.Hour {
		t.Fatalf("expected 1h, got %v", got)
	}
	if got := b.expiry(sign(now.Add(48 * time.Hour))); got != 12*time.Hour {
		t.Fatalf("ttl should cap long tokens, got %v", got)
	}
	if got := b.expiry(sign(now.Add(-time.Minute))); got != time.Second {
		t.Fatalf("expired token should get a minimal ttl, got %v", got)
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConnect_FailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := Connect(context.Background(), Config{Addr: addr, DialTimeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected an error when nothing listens on %s", addr)
	}
}

func TestCredentialBackend_SaveLoadRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	b := NewCredentialBackend(client, "s", 0)
	ctx := context.Background()

	want := domain.Credential{AccessToken: "opaque", RefreshToken: "R1"}
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := b.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if ttl := mr.TTL("aura:credential:s"); ttl != 12*time.Hour {
		t.Fatalf("opaque token should get the default ttl, got %v", ttl)
	}
}

func TestCredentialBackend_LoadAbsentKey(t *testing.T) {
	_, client := newTestRedis(t)
	b := NewCredentialBackend(client, "nobody", time.Hour)

	if _, err := b.Load(context.Background()); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestCredentialBackend_LoadCorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	b := NewCredentialBackend(client, "s", time.Hour)
	if err := mr.Set("aura:credential:s", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := b.Load(context.Background())
	if err == nil || errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}

func TestCredentialBackend_Delete(t *testing.T) {
	mr, client := newTestRedis(t)
	b := NewCredentialBackend(client, "s", time.Hour)
	ctx := context.Background()

	if err := b.Save(ctx, domain.Credential{AccessToken: "T1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := b.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if mr.Exists("aura:credential:s") {
		t.Fatalf("key should be gone after Delete")
	}
	if _, err := b.Load(ctx); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after Delete, got %v", err)
	}
	if err := b.Delete(ctx); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestCredentialBackend_KeyExpiresWithToken(t *testing.T) {
	mr, client := newTestRedis(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewCredentialBackend(client, "s", 12*time.Hour)
	b.now = func() time.Time { return now }
	ctx := context.Background()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if err := b.Save(ctx, domain.Credential{AccessToken: tok}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if ttl := mr.TTL("aura:credential:s"); ttl != time.Hour {
		t.Fatalf("ttl should follow the token exp, got %v", ttl)
	}

	mr.FastForward(time.Hour + time.Second)
	if _, err := b.Load(ctx); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected the key to expire with the token, got %v", err)
	}
}
