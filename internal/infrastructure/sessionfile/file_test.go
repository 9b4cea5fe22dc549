package sessionfile

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"

	"github.com/aura-home/aura-client/internal/core/domain"
)

func TestBackend_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credential.json")
	b, err := New(path, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := b.Load(ctx); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential before save, got %v", err)
	}

	want := domain.Credential{AccessToken: "T1", RefreshToken: "R1"}
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600, got %o", perm)
	}

	got, err := b.Load(ctx)
	if err != nil || got != want {
		t.Fatalf("Load = %+v, %v", got, err)
	}

	if err := b.Delete(ctx); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := b.Delete(ctx); err != nil {
		t.Fatalf("second Delete must be a no-op: %v", err)
	}
	if _, err := b.Load(ctx); !errors.Is(err, domain.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential after delete, got %v", err)
	}
}

func TestBackend_EncryptedAtRest(t *testing.T) {
	ctx := context.Background()
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		t.Fatalf("generate identity: %v", err)
	}
	path := filepath.Join(t.TempDir(), "credential.json")
	b, err := New(path, identity.String())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !b.Encrypted() {
		t.Fatalf("expected encrypted backend")
	}

	if err := b.Save(ctx, domain.Credential{AccessToken: "secret-token"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if bytes.Contains(raw, []byte("secret-token")) {
		t.Fatalf("token stored in clear text")
	}

	got, err := b.Load(ctx)
	if err != nil || got.AccessToken != "secret-token" {
		t.Fatalf("Load = %+v, %v", got, err)
	}

	other, _ := age.GenerateX25519Identity()
	wrongKey, _ := New(path, other.String())
	if _, err := wrongKey.Load(ctx); err == nil {
		t.Fatalf("expected decrypt failure with a foreign key")
	}
}

func TestNew_RejectsMalformedKey(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "c.json"), "not-a-key"); err == nil {
		t.Fatalf("expected parse error")
	}
}
