package credential

import (
	"context"
	"sync"

	"github.com/aura-home/aura-client/internal/core/domain"
)

// MemoryBackend keeps the persisted copy in process memory. It survives
// nothing, which is what ephemeral runs and tests want.
type MemoryBackend struct {
	mu    sync.Mutex
	value *domain.Credential
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Load(context.Context) (domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.value == nil {
		return domain.Credential{}, domain.ErrNoCredential
	}
	return *m.value, nil
}

func (m *MemoryBackend) Save(_ context.Context, c domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = &c
	return nil
}

func (m *MemoryBackend) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = nil
	return nil
}
