package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/api/handler"
	"github.com/aura-home/aura-client/internal/api/metrics"
	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/guard"
)

// SessionReader is the part of the session store the guard needs.
type SessionReader interface {
	State() domain.SessionState
}

type pendingResponse struct {
	Status string `json:"status"`
	Retry  string `json:"retry"`
}

// Guard runs the access guard on every navigation. The rule is looked up
// by the matched echo route; routes missing from the table admit any
// signed-in identity.
func Guard(session SessionReader, rules *guard.Rules, paths guard.Paths, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rule, err := rules.Lookup(c.Path())
			if errors.Is(err, guard.ErrUnknownRoute) {
				log.Warn().Str("route", c.Path()).Msg("route has no access rule, requiring sign-in")
				rule = domain.RouteAccessRule{Path: c.Path()}
			}

			state := session.State()
			d := paths.Decide(state, rule, c.Request().RequestURI)
			metrics.GuardDecisionsTotal.WithLabelValues(string(d.Outcome)).Inc()

			switch d.Outcome {
			case guard.Pending:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusAccepted, pendingResponse{Status: string(domain.StatusLoading), Retry: c.Request().RequestURI})
			case guard.RedirectLogin, guard.RedirectFallback:
				return c.Redirect(http.StatusSeeOther, d.Location)
			}

			if state.Identity != nil {
				c.Set(handler.ContextIdentity, state.Identity)
			}
			return next(c)
		}
	}
}
