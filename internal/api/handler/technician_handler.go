package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

type TechnicianHandler struct {
	technicians ports.TechnicianService
	reviews     ports.ReviewService
}

func NewTechnicianHandler(technicians ports.TechnicianService, reviews ports.ReviewService) *TechnicianHandler {
	return &TechnicianHandler{technicians: technicians, reviews: reviews}
}

type technicianDetailResponse struct {
	Technician *domain.Technician          `json:"technician"`
	Reviews    *domain.Page[domain.Review] `json:"reviews"`
}

// List returns the technician directory, filtered by specialty and
// minimum rating when given.
//
// @Summary      List technicians
// @Tags         technicians
// @Produce      json
// @Param        specialty  query     string  false  "Service category"
// @Param        minRating  query     number  false  "Minimum average rating"
// @Param        page       query     int     false  "Page (0-based)"
// @Param        size       query     int     false  "Page size"
// @Success      200        {object}  domain.Page[domain.Technician]
// @Failure      400        {object}  map[string]string
// @Router       /technicians [get]
func (h *TechnicianHandler) List(c echo.Context) error {
	req, err := pageParams(c)
	if err != nil {
		return err
	}
	filter := domain.TechnicianSearch{PageRequest: req}

	if s := c.QueryParam("specialty"); s != "" {
		filter.Specialty = domain.ServiceCategory(strings.ToUpper(s))
		if !filter.Specialty.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown specialty "+s)
		}
	}
	if s := c.QueryParam("minRating"); s != "" {
		r, err := strconv.ParseFloat(s, 64)
		if err != nil || r < 0 || r > 5 {
			return echo.NewHTTPError(http.StatusBadRequest, "minRating must be between 0 and 5")
		}
		filter.MinRating = r
	}

	var page *domain.Page[domain.Technician]
	if filter.Specialty == "" && filter.MinRating == 0 {
		page, err = h.technicians.List(c.Request().Context(), filter.PageRequest)
	} else {
		page, err = h.technicians.Search(c.Request().Context(), filter)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns a technician profile with the first page of reviews.
//
// @Summary      Technician detail
// @Tags         technicians
// @Produce      json
// @Param        id   path      int  true  "Technician ID"
// @Success      200  {object}  technicianDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /technicians/{id} [get]
func (h *TechnicianHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	reviewPage, err := pageParams(c)
	if err != nil {
		return err
	}

	var resp technicianDetailResponse
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		resp.Technician, err = h.technicians.Get(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Reviews, err = h.reviews.ByTechnician(ctx, id, reviewPage)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// Admin lists technicians for the administration view.
//
// @Summary      Technician administration
// @Tags         admin
// @Produce      json
// @Success      200  {object}  domain.Page[domain.Technician]
// @Failure      303
// @Router       /admin/technicians [get]
func (h *TechnicianHandler) Admin(c echo.Context) error {
	req, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.technicians.List(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
