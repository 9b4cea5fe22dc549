package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// AuthService is the typed client of the authentication endpoints.
type AuthService struct {
	api ports.Requester
}

func NewAuthService(api ports.Requester) *AuthService {
	return &AuthService{api: api}
}

// authResponse accepts the canonical {credential, identity} envelope as
// well as the older {token, refreshToken, user} and flat
// {token, userId, email, ...} shapes the backend has shipped.
type authResponse struct {
	Credential *domain.Credential `json:"credential"`
	Identity   *domain.Identity   `json:"identity"`

	Token        string           `json:"token"`
	RefreshToken string           `json:"refreshToken"`
	User         *domain.Identity `json:"user"`

	UserID    int64       `json:"userId"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
}

func (r authResponse) result() (*domain.AuthResult, error) {
	var out domain.AuthResult

	switch {
	case r.Credential != nil && !r.Credential.IsZero():
		out.Credential = *r.Credential
	case r.Token != "":
		out.Credential = domain.Credential{AccessToken: r.Token, RefreshToken: r.RefreshToken}
	default:
		return nil, fmt.Errorf("%w: no access token", domain.ErrMalformedResponse)
	}

	switch {
	case r.Identity != nil:
		out.Identity = *r.Identity
	case r.User != nil:
		out.Identity = *r.User
	case r.UserID != 0:
		out.Identity = domain.Identity{
			ID:        r.UserID,
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Role:      r.Role,
		}
	default:
		return nil, fmt.Errorf("%w: no identity", domain.ErrMalformedResponse)
	}

	if !out.Identity.Role.IsValid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidRole, out.Identity.Role)
	}
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	return s.authenticate(ctx, pathLogin, req)
}

func (s *AuthService) RegisterUser(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	req.Role = domain.RoleUser
	return s.authenticate(ctx, pathRegisterUser, req)
}

func (s *AuthService) RegisterTechnician(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	req.Role = domain.RoleTechnician
	return s.authenticate(ctx, pathRegisterTechnician, req)
}

func (s *AuthService) CurrentUser(ctx context.Context) (*domain.Identity, error) {
	var identity domain.Identity
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: pathCurrentUser}, &identity); err != nil {
		return nil, err
	}
	if !identity.Role.IsValid() {
		return nil, fmt.Errorf("%w: role %q", domain.ErrInvalidRole, identity.Role)
	}
	return &identity, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: pathLogout}, nil)
}

func (s *AuthService) authenticate(ctx context.Context, path string, body any) (*domain.AuthResult, error) {
	var resp authResponse
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: path, Body: body}, &resp); err != nil {
		return nil, err
	}
	return resp.result()
}
