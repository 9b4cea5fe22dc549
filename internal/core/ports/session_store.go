package ports

import (
	"context"

	"github.com/aura-home/aura-client/internal/core/domain"
)

// SessionStore is the process-wide authentication state machine as seen by
// the view layer.
type SessionStore interface {
	State() domain.SessionState
	Restore(ctx context.Context) error
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req domain.RegisterRequest, role domain.Role) error
	Logout(ctx context.Context) error
	SetIdentity(identity domain.Identity)
	ClearError()
}

// SessionEvents receives session events. Implementations must not block for
// long; the session store publishes outside its lock.
type SessionEvents interface {
	Publish(event domain.SessionEvent)
}
