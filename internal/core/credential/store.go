// Package credential holds the client's current access credential and keeps
// the in-memory copy and its persisted copy in step.
package credential

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// Store implements ports.CredentialStore over a persistence backend.
type Store struct {
	mu      sync.Mutex
	current *domain.Credential
	backend ports.CredentialBackend
	log     zerolog.Logger
}

func NewStore(backend ports.CredentialBackend, log zerolog.Logger) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{backend: backend, log: log}
}

// Get returns the in-memory credential, or rehydrates it from the backend.
// Backend failures read as "absent".
func (s *Store) Get(ctx context.Context) (domain.Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return *s.current, true
	}

	c, err := s.backend.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCredential) {
			s.log.Warn().Err(err).Msg("credential rehydrate failed")
		}
		return domain.Credential{}, false
	}
	if c.IsZero() {
		return domain.Credential{}, false
	}

	s.current = &c
	return c, true
}

// Set replaces the current credential. The in-memory value always takes
// effect; when persisting fails the persisted copy is removed so a restart
// cannot resurrect the previous credential.
func (s *Store) Set(ctx context.Context, c domain.Credential) error {
	if c.IsZero() {
		return fmt.Errorf("credential: empty access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &c
	if err := s.backend.Save(ctx, c); err != nil {
		if delErr := s.backend.Delete(ctx); delErr != nil {
			s.log.Error().Err(delErr).Msg("credential: removing stale persisted copy failed")
		}
		return fmt.Errorf("credential: persist: %w", err)
	}
	return nil
}

// Clear drops the credential from memory and from the backend.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.backend.Delete(ctx); err != nil {
		return fmt.Errorf("credential: delete: %w", err)
	}
	return nil
}
