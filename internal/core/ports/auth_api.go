package ports

import (
	"context"

	"github.com/aura-home/aura-client/internal/core/domain"
)

// AuthAPI is the typed contract of the remote authentication endpoints.
type AuthAPI interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error)
	RegisterUser(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	RegisterTechnician(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error)
	CurrentUser(ctx context.Context) (*domain.Identity, error)
	Logout(ctx context.Context) error
}
