package domain

import "time"

type SessionStatus string

const (
	StatusIdle            SessionStatus = "idle"
	StatusLoading         SessionStatus = "loading"
	StatusAuthenticated   SessionStatus = "authenticated"
	StatusUnauthenticated SessionStatus = "unauthenticated"
)

// SessionState is a snapshot of the session. Identity is non-nil exactly
// when Status is StatusAuthenticated.
type SessionState struct {
	Status   SessionStatus `json:"status"`
	Identity *Identity     `json:"identity"`
	Error    string        `json:"error,omitempty"`
}

func (s SessionState) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.Identity != nil
}

// Role returns the identity's role, or "" when nobody is signed in.
func (s SessionState) Role() Role {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.Role
}

type SessionEventKind string

const (
	EventStateChanged  SessionEventKind = "state-changed"
	EventLoginRequired SessionEventKind = "login-required"
)

// SessionEvent is published by the session store. LoginRequired events
// carry the APIError that forced the logout.
type SessionEvent struct {
	Kind  SessionEventKind
	State SessionState
	Cause *APIError
	At    time.Time
}
