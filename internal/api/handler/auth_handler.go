package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/guard"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// PhoneNormalizer turns a typed phone number into E.164.
type PhoneNormalizer interface {
	Phone(raw string) (string, error)
}

// AuthHandler drives the session store from the login, registration and
// logout forms.
type AuthHandler struct {
	session ports.SessionStore
	rules   *guard.Rules
	paths   guard.Paths
	phones  PhoneNormalizer
}

func NewAuthHandler(session ports.SessionStore, rules *guard.Rules, paths guard.Paths, phones PhoneNormalizer) *AuthHandler {
	return &AuthHandler{session: session, rules: rules, paths: paths, phones: phones}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Redirect string `json:"redirect"`
}

type registerRequest struct {
	FirstName   string   `json:"firstName"   validate:"required"`
	LastName    string   `json:"lastName"    validate:"required"`
	Email       string   `json:"email"       validate:"required,email"`
	Password    string   `json:"password"    validate:"required,min=6"`
	Phone       string   `json:"phone"       validate:"omitempty,phone"`
	Role        string   `json:"role"`
	Description string   `json:"description" validate:"required_if=Role TECHNICIAN,max=500"`
	Specialties []string `json:"specialties" validate:"required_if=Role TECHNICIAN,dive,category"`
	Redirect    string   `json:"redirect"`
}

type sessionResponse struct {
	Session  domain.SessionState      `json:"session"`
	Nav      []domain.RouteAccessRule `json:"nav"`
	Redirect string                   `json:"redirect,omitempty"`
}

type authFailure struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

// Login signs in with email and password.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  authFailure
// @Failure      401   {object}  authFailure
// @Failure      502   {object}  authFailure
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.session.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password); err != nil {
		return h.authFailed(c, err)
	}
	return h.signedIn(c, http.StatusOK, req.Redirect)
}

// Register creates a USER or TECHNICIAN account and signs it in.
//
// @Summary      Register
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  authFailure
// @Failure      409   {object}  authFailure
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role := domain.RoleUser
	if req.Role != "" {
		r, _ := domain.ParseRole(req.Role)
		if r != domain.RoleUser && r != domain.RoleTechnician {
			return echo.NewHTTPError(http.StatusBadRequest, "role must be USER or TECHNICIAN")
		}
		role = r
	}

	payload := domain.RegisterRequest{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Password:    req.Password,
		Description: req.Description,
	}
	if req.Phone != "" {
		phone, err := h.phones.Phone(req.Phone)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "phone must be a valid phone number")
		}
		payload.Phone = phone
	}
	for _, s := range req.Specialties {
		payload.Specialties = append(payload.Specialties, domain.ServiceCategory(s))
	}

	if err := h.session.Register(c.Request().Context(), payload, role); err != nil {
		return h.authFailed(c, err)
	}
	return h.signedIn(c, http.StatusCreated, req.Redirect)
}

// Logout ends the session. It always succeeds from the caller's view.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// The store logs a failed clear and is signed out either way.
	_ = h.session.Logout(c.Request().Context())
	return h.respond(c, http.StatusOK, h.paths.Login)
}

// Session returns the current session and the navigation it may see.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return h.respond(c, http.StatusOK, "")
}

func (h *AuthHandler) signedIn(c echo.Context, status int, redirect string) error {
	return h.respond(c, status, h.safeRedirect(redirect, c.QueryParam("redirect")))
}

func (h *AuthHandler) respond(c echo.Context, status int, redirect string) error {
	st := h.session.State()
	return c.JSON(status, sessionResponse{Session: st, Nav: h.rules.Visible(st), Redirect: redirect})
}

// authFailed reports a failed login or registration with the message the
// session store recorded.
func (h *AuthHandler) authFailed(c echo.Context, err error) error {
	msg := h.session.State().Error
	if msg == "" {
		msg = err.Error()
	}

	status := http.StatusBadGateway
	kind := domain.ErrorKind("")
	if apiErr, ok := domain.AsAPIError(err); ok {
		status = apiErr.Kind.HTTPStatus()
		kind = apiErr.Kind
	}
	return c.JSON(status, authFailure{Error: msg, Kind: kind})
}

// safeRedirect keeps only local paths so the login form cannot be used to
// bounce users to another site.
func (h *AuthHandler) safeRedirect(candidates ...string) string {
	for _, r := range candidates {
		if strings.HasPrefix(r, "/") && !strings.HasPrefix(r, "//") && !strings.HasPrefix(r, "/\\") {
			return r
		}
	}
	return h.paths.Fallback
}
