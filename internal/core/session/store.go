// Package session holds the process-wide authentication state of the
// client: who is signed in, whether an auth call is in flight and the last
// user-facing auth error.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/api/metrics"
	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

const (
	msgLoginFailed    = "login failed"
	msgRegisterFailed = "registration failed"
)

// Store implements ports.SessionStore. Overlapping Login/Register/Restore
// calls are not serialized: whichever resolves last decides the state.
type Store struct {
	mu    sync.RWMutex
	state domain.SessionState

	auth   ports.AuthAPI
	creds  ports.CredentialStore
	events ports.SessionEvents
	log    zerolog.Logger
	now    func() time.Time
}

// NewStore returns a store in the idle state. events may be nil.
func NewStore(auth ports.AuthAPI, creds ports.CredentialStore, events ports.SessionEvents, log zerolog.Logger) *Store {
	return &Store{
		state:  domain.SessionState{Status: domain.StatusIdle},
		auth:   auth,
		creds:  creds,
		events: events,
		log:    log,
		now:    time.Now,
	}
}

// State returns a snapshot; callers may keep and modify it freely.
func (s *Store) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.state)
}

func (s *Store) HasRole(role domain.Role) bool {
	return s.State().Role() == role && role != ""
}

func (s *Store) HasAnyRole(roles ...domain.Role) bool {
	st := s.State()
	return st.Authenticated() && st.Role().In(roles)
}

// BeginRestore moves the store to loading without touching the credential
// backend. Callers that run Restore in the background call it first, so a
// view requested before the backend answers waits instead of being sent to
// the login page.
func (s *Store) BeginRestore() {
	s.transition(domain.StatusLoading, nil, "")
}

// Restore re-establishes the session from a persisted credential, e.g. after
// a restart. Without a credential the store becomes unauthenticated without
// touching the network.
func (s *Store) Restore(ctx context.Context) error {
	cred, ok := s.creds.Get(ctx)
	if !ok {
		s.transition(domain.StatusUnauthenticated, nil, "")
		return nil
	}

	if s.State().Status != domain.StatusLoading {
		s.transition(domain.StatusLoading, nil, "")
	}

	if cred.Expired(s.now()) {
		s.dropCredential(ctx)
		s.transition(domain.StatusUnauthenticated, nil, "")
		return domain.ErrCredentialExpired
	}

	identity, err := s.auth.CurrentUser(ctx)
	if err != nil {
		// a 401 already cleared the credential in the pipeline
		if !domain.IsKind(err, domain.KindUnauthenticated) {
			s.dropCredential(ctx)
		}
		s.transition(domain.StatusUnauthenticated, nil, "")
		return fmt.Errorf("restore session: %w", err)
	}

	s.transition(domain.StatusAuthenticated, identity, "")
	return nil
}

// Login authenticates with email and password. On failure the error is
// returned unchanged and the state carries a user-facing message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.transition(domain.StatusLoading, nil, "")

	res, err := s.auth.Login(ctx, domain.LoginRequest{Email: email, Password: password})
	if err != nil {
		return s.fail(err, msgLoginFailed)
	}
	return s.establish(ctx, res, msgLoginFailed)
}

// Register creates an account for role and signs it in. Only USER and
// TECHNICIAN accounts can be self-registered; an empty role means USER.
func (s *Store) Register(ctx context.Context, req domain.RegisterRequest, role domain.Role) error {
	var register func(context.Context, domain.RegisterRequest) (*domain.AuthResult, error)
	switch role {
	case domain.RoleTechnician:
		register = s.auth.RegisterTechnician
	case domain.RoleUser, "":
		register = s.auth.RegisterUser
	default:
		return fmt.Errorf("%w: %q cannot self-register", domain.ErrInvalidRole, role)
	}

	s.transition(domain.StatusLoading, nil, "")

	res, err := register(ctx, req)
	if err != nil {
		return s.fail(err, msgRegisterFailed)
	}
	return s.establish(ctx, res, msgRegisterFailed)
}

// Logout tells the server best-effort and then always ends unauthenticated
// with no credential.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		s.log.Warn().Err(err).Msg("server-side logout failed")
	}

	var clearErr error
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("clearing credential on logout failed")
		clearErr = fmt.Errorf("logout: %w", err)
	}

	s.transition(domain.StatusUnauthenticated, nil, "")
	return clearErr
}

// SetIdentity replaces the signed-in identity, e.g. after a profile update.
// It is a no-op unless the store is authenticated.
func (s *Store) SetIdentity(identity domain.Identity) {
	s.mu.Lock()
	if s.state.Status != domain.StatusAuthenticated {
		s.mu.Unlock()
		return
	}
	s.state.Identity = &identity
	st := snapshot(s.state)
	s.mu.Unlock()

	s.publish(domain.SessionEvent{Kind: domain.EventStateChanged, State: st, At: s.now()})
}

func (s *Store) ClearError() {
	s.mu.Lock()
	changed := s.state.Error != ""
	s.state.Error = ""
	st := snapshot(s.state)
	s.mu.Unlock()

	if changed {
		s.publish(domain.SessionEvent{Kind: domain.EventStateChanged, State: st, At: s.now()})
	}
}

// HandleUnauthorized is registered with the request pipeline. By the time it
// runs the credential is already gone; the store drops the identity and asks
// the shell to send the user to the login page.
func (s *Store) HandleUnauthorized(_ context.Context, cause *domain.APIError) {
	st := s.transition(domain.StatusUnauthenticated, nil, "")

	path := ""
	if cause != nil {
		path = cause.Path
	}
	s.log.Info().Str("path", path).Msg("session invalidated by the api")

	s.publish(domain.SessionEvent{Kind: domain.EventLoginRequired, State: st, Cause: cause, At: s.now()})
}

func (s *Store) establish(ctx context.Context, res *domain.AuthResult, fallback string) error {
	// Set keeps the in-memory credential even when persisting fails, so the
	// session stays usable until the process exits.
	if err := s.creds.Set(ctx, res.Credential); err != nil {
		if _, ok := s.creds.Get(ctx); !ok {
			return s.fail(err, fallback)
		}
		s.log.Warn().Err(err).Msg("credential not persisted; session will not survive a restart")
	}

	identity := res.Identity
	s.transition(domain.StatusAuthenticated, &identity, "")
	return nil
}

func (s *Store) fail(err error, fallback string) error {
	msg := fallback
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	s.transition(domain.StatusUnauthenticated, nil, msg)
	return err
}

func (s *Store) dropCredential(ctx context.Context) {
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Error().Err(err).Msg("clearing credential failed")
	}
}

// transition moves to status and publishes the new state outside the lock.
// identity is only kept for the authenticated status.
func (s *Store) transition(status domain.SessionStatus, identity *domain.Identity, errMsg string) domain.SessionState {
	if status != domain.StatusAuthenticated {
		identity = nil
	}

	s.mu.Lock()
	prev := s.state.Status
	s.state = domain.SessionState{Status: status, Identity: identity, Error: errMsg}
	st := snapshot(s.state)
	s.mu.Unlock()

	metrics.SessionTransitionsTotal.WithLabelValues(string(status)).Inc()
	s.log.Debug().
		Str("from", string(prev)).
		Str("to", string(status)).
		Str("role", string(st.Role())).
		Msg("session transition")

	s.publish(domain.SessionEvent{Kind: domain.EventStateChanged, State: st, At: s.now()})
	return st
}

func (s *Store) publish(ev domain.SessionEvent) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}

func snapshot(st domain.SessionState) domain.SessionState {
	if st.Identity != nil {
		id := *st.Identity
		id.Specialties = slices.Clone(id.Specialties)
		st.Identity = &id
	}
	return st
}
