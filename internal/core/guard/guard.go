// Package guard decides whether the current session may reach a view.
package guard

import (
	"net/url"

	"github.com/aura-home/aura-client/internal/core/domain"
)

type Outcome string

const (
	// Pending means an auth call is in flight; render a pending indicator
	// and ask again once the session settles.
	Pending          Outcome = "pending"
	Allow            Outcome = "allow"
	RedirectLogin    Outcome = "redirect-login"
	RedirectFallback Outcome = "redirect-fallback"
)

// Decision is the result of Decide. Location is set for the two redirect
// outcomes.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Paths are the two redirect targets of the guard.
type Paths struct {
	Login    string
	Fallback string
}

var DefaultPaths = Paths{Login: "/login", Fallback: "/dashboard"}

// Decide is total over every session status and performs no I/O. requested
// is the location the user asked for; it is carried to the login page so
// the navigation can resume after sign-in.
func (p Paths) Decide(state domain.SessionState, rule domain.RouteAccessRule, requested string) Decision {
	if rule.Public {
		return Decision{Outcome: Allow}
	}

	switch state.Status {
	case domain.StatusLoading:
		return Decision{Outcome: Pending}
	case domain.StatusAuthenticated:
		if state.Identity == nil {
			return Decision{Outcome: RedirectLogin, Location: p.loginURL(requested)}
		}
	default:
		return Decision{Outcome: RedirectLogin, Location: p.loginURL(requested)}
	}

	if rule.AllowedRoles != nil && !state.Identity.Role.In(rule.AllowedRoles) {
		return Decision{Outcome: RedirectFallback, Location: p.Fallback}
	}
	return Decision{Outcome: Allow}
}

// Decide uses DefaultPaths.
func Decide(state domain.SessionState, rule domain.RouteAccessRule, requested string) Decision {
	return DefaultPaths.Decide(state, rule, requested)
}

func (p Paths) loginURL(requested string) string {
	if requested == "" || requested == p.Login {
		return p.Login
	}
	return p.Login + "?" + url.Values{"redirect": {requested}}.Encode()
}
