package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

type ProfileHandler struct {
	session ports.SessionStore
	users   ports.UserService
	phones  PhoneNormalizer
}

func NewProfileHandler(session ports.SessionStore, users ports.UserService, phones PhoneNormalizer) *ProfileHandler {
	return &ProfileHandler{session: session, users: users, phones: phones}
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Phone     string `json:"phone"     validate:"omitempty,phone"`
}

// Get returns the signed-in identity.
//
// @Summary      Current profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      303
// @Router       /profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

// Update saves the profile form and replaces the session identity with what
// the server returned.
//
// @Summary      Update profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Identity
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := domain.UpdateProfileRequest{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
	}
	if req.Phone != "" {
		if in.Phone, err = h.phones.Phone(req.Phone); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "phone must be a valid phone number")
		}
	}

	updated, err := h.users.Update(c.Request().Context(), id.ID, in)
	if err != nil {
		return err
	}
	h.session.SetIdentity(*updated)

	return c.JSON(http.StatusOK, updated)
}
