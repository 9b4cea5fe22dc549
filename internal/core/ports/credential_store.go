package ports

import (
	"context"

	"github.com/aura-home/aura-client/internal/core/domain"
)

// CredentialStore holds the single current credential.
type CredentialStore interface {
	// Get returns the current credential, rehydrating from persistence when
	// the in-memory copy is absent.
	Get(ctx context.Context) (domain.Credential, bool)
	Set(ctx context.Context, c domain.Credential) error
	// Clear removes the credential everywhere. Idempotent.
	Clear(ctx context.Context) error
}

// CredentialBackend persists the credential across process restarts.
// Load returns domain.ErrNoCredential when nothing is stored.
type CredentialBackend interface {
	Load(ctx context.Context) (domain.Credential, error)
	Save(ctx context.Context, c domain.Credential) error
	Delete(ctx context.Context) error
}
