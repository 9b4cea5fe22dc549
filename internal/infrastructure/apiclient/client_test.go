package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/core/domain"
)

type countingCreds struct {
	mu     sync.Mutex
	cred   *domain.Credential
	clears int
}

func (c *countingCreds) Get(context.Context) (domain.Credential, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred == nil {
		return domain.Credential{}, false
	}
	return *c.cred, true
}

func (c *countingCreds) Set(_ context.Context, cred domain.Credential) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = &cred
	return nil
}

func (c *countingCreds) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clears++
	c.cred = nil
	return nil
}

func newTestClient(t *testing.T, srv *httptest.Server, creds *countingCreds) *Client {
	t.Helper()
	c, err := New(srv.URL, time.Second, creds, zerolog.Nop(), WithRequestIDs(func() string { return "req-1" }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestDo_AttachesBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer T1" {
			t.Errorf("unexpected authorization %q", got)
		}
		if got := r.Header.Get(HeaderRequestID); got != "req-1" {
			t.Errorf("unexpected request id %q", got)
		}
		if r.URL.Path != "/api/services" || r.URL.Query().Get("page") != "2" {
			t.Errorf("unexpected url %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"content":[{"id":1,"name":"Leak fix","category":"PLUMBING"}],"totalPages":3,"totalElements":21,"size":10,"number":2}`))
	}))
	defer srv.Close()

	creds := &countingCreds{cred: &domain.Credential{AccessToken: "T1"}}
	c := newTestClient(t, srv, creds)

	var page domain.Page[domain.Service]
	if err := c.Get(context.Background(), "/api/services", url.Values{"page": {"2"}}, &page); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.TotalElements != 21 || len(page.Content) != 1 || page.Content[0].Category != domain.CategoryPlumbing {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestDo_NoCredentialProceedsUnauthenticated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["Authorization"]; ok {
			t.Errorf("no authorization header expected")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &countingCreds{})
	if err := c.Get(context.Background(), "/api/services", nil, nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestDo_ClassifiesFailures(t *testing.T) {
	cases := []struct {
		status int
		want   domain.ErrorKind
	}{
		{http.StatusBadRequest, domain.KindInvalidInput},
		{http.StatusForbidden, domain.KindForbidden},
		{http.StatusNotFound, domain.KindNotFound},
		{http.StatusConflict, domain.KindConflict},
		{http.StatusInternalServerError, domain.KindServer},
		{http.StatusBadGateway, domain.KindServer},
		{http.StatusTeapot, domain.KindUnknown},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		creds := &countingCreds{cred: &domain.Credential{AccessToken: "T1"}}
		c := newTestClient(t, srv, creds)

		err := c.Get(context.Background(), "/api/reservations/my", nil, nil)
		srv.Close()

		apiErr, ok := domain.AsAPIError(err)
		if !ok {
			t.Fatalf("status %d: expected APIError, got %v", tc.status, err)
		}
		if apiErr.Kind != tc.want || apiErr.StatusCode() != tc.status {
			t.Fatalf("status %d: got kind %s status %d", tc.status, apiErr.Kind, apiErr.StatusCode())
		}
		if apiErr.Path != "/api/reservations/my" || apiErr.Message != tc.want.UserMessage() {
			t.Fatalf("status %d: unexpected error %+v", tc.status, apiErr)
		}
		if creds.clears != 0 {
			t.Fatalf("status %d: credential must stay untouched", tc.status)
		}
	}
}

func TestDo_UsesServerMessageAndTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":   "email already registered",
			"timestamp": "2026-10-17T10:00:00Z",
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &countingCreds{})
	err := c.Post(context.Background(), "/api/auth/register", map[string]string{"email": "a@x.com"}, nil)

	apiErr, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "email already registered" || apiErr.Timestamp != "2026-10-17T10:00:00Z" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestDo_UnauthorizedClearsOnceAndNotifies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	creds := &countingCreds{cred: &domain.Credential{AccessToken: "stale"}}
	c := newTestClient(t, srv, creds)

	var notified []*domain.APIError
	c.OnUnauthorized(func(_ context.Context, err *domain.APIError) {
		if creds.cred != nil {
			t.Errorf("handler must run after the credential is cleared")
		}
		notified = append(notified, err)
	})

	err := c.Get(context.Background(), "/api/payments/3", nil, nil)
	if !domain.IsKind(err, domain.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if creds.clears != 1 {
		t.Fatalf("expected exactly one clear, got %d", creds.clears)
	}
	if len(notified) != 1 || notified[0].Path != "/api/payments/3" {
		t.Fatalf("unexpected notifications %+v", notified)
	}
}

func TestDo_ProtectedCallWithoutCredential(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	creds := &countingCreds{}
	c := newTestClient(t, srv, creds)

	err := c.Get(context.Background(), "/api/auth/me", nil, nil)
	if !domain.IsKind(err, domain.KindUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if creds.clears > 1 {
		t.Fatalf("clear called %d times for one failure", creds.clears)
	}
}

func TestDo_NetworkErrorHasNoStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	creds := &countingCreds{cred: &domain.Credential{AccessToken: "T1"}}
	c, err := New(base, time.Second, creds, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = c.Get(context.Background(), "/api/services", nil, nil)
	apiErr, ok := domain.AsAPIError(err)
	if !ok || apiErr.Kind != domain.KindNetwork || apiErr.Status != nil {
		t.Fatalf("expected network error without status, got %v", err)
	}
	if creds.clears != 0 {
		t.Fatalf("network errors must not touch the credential")
	}
}

func TestDo_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(srv.URL, 50*time.Millisecond, &countingCreds{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = c.Get(context.Background(), "/api/technicians", nil, nil)
	if !domain.IsKind(err, domain.KindNetwork) {
		t.Fatalf("expected network error on timeout, got %v", err)
	}
}

func TestDo_MalformedSuccessPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, &countingCreds{})
	var out domain.Service
	err := c.Get(context.Background(), "/api/services/1", nil, &out)
	if !errors.Is(err, domain.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	if _, err := New("localhost:8080", 0, &countingCreds{}, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for base url without scheme")
	}
}
