package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/guard"
)

type signedOutSession struct{}

func (signedOutSession) State() domain.SessionState {
	return domain.SessionState{Status: domain.StatusUnauthenticated}
}
func (signedOutSession) Restore(context.Context) error               { return nil }
func (signedOutSession) Login(context.Context, string, string) error { return nil }
func (signedOutSession) Logout(context.Context) error                { return nil }
func (signedOutSession) SetIdentity(domain.Identity)                 {}
func (signedOutSession) ClearError()                                 {}

func (signedOutSession) Register(context.Context, domain.RegisterRequest, domain.Role) error {
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Session:     signedOutSession{},
		Rules:       guard.DefaultRules(),
		Paths:       guard.DefaultPaths,
		PhoneRegion: "US",
		APIBaseURL:  "http://127.0.0.1:1",
		Log:         zerolog.Nop(),
	})
}

func TestRouter_ProbesAndMetricsAreUnguarded(t *testing.T) {
	r := newTestRouter(t)

	for _, target := range []string{"/health", "/metrics"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestRouter_GuardedViewRedirectsSignedOutVisitor(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login?redirect=") {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestRouter_SessionIsPublic(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/session", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"unauthenticated"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestRouter_ReadinessReportsUnreachableAPI(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
