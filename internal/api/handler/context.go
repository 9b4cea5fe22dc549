package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/aura-home/aura-client/internal/core/domain"
)

// ContextIdentity is the echo context key the guard middleware stores the
// signed-in identity under.
const ContextIdentity = "identity"

// ctxIdentity returns the identity the guard admitted. Its absence on a
// guarded route means the middleware did not run, which is a wiring bug.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, _ := c.Get(ContextIdentity).(*domain.Identity)
	if id == nil {
		return nil, domain.ErrNotAuthenticated
	}
	return id, nil
}

func pageParams(c echo.Context) (domain.PageRequest, error) {
	var p domain.PageRequest
	if err := echo.QueryParamsBinder(c).Int("page", &p.Page).Int("size", &p.Size).BindError(); err != nil || p.Page < 0 || p.Size < 0 {
		return domain.PageRequest{}, echo.NewHTTPError(http.StatusBadRequest, "page and size must be non-negative integers")
	}
	return p, nil
}

func idParam(c echo.Context, name string) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64(name, &id).BindError(); err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}

// bindAndValidate binds the body into dst and runs the registered
// validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(dst)
}
