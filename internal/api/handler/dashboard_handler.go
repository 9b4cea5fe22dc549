package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

const (
	dashboardReservations = 5
	dashboardServices     = 6
)

type DashboardHandler struct {
	reservations ports.ReservationService
	catalog      ports.CatalogService
}

func NewDashboardHandler(reservations ports.ReservationService, catalog ports.CatalogService) *DashboardHandler {
	return &DashboardHandler{reservations: reservations, catalog: catalog}
}

type dashboardStats struct {
	ActiveReservations int     `json:"activeReservations"`
	TotalSpent         float64 `json:"totalSpent"`
	ServicesUsed       int     `json:"servicesUsed"`
	Completed          int     `json:"completed"`
}

type dashboardResponse struct {
	Greeting     string               `json:"greeting"`
	Stats        dashboardStats       `json:"stats"`
	Reservations []domain.Reservation `json:"reservations"`
	Services     []domain.Service     `json:"services"`
}

// Get loads the latest reservations and a slice of the catalogue in
// parallel.
//
// @Summary      Dashboard
// @Tags         views
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      303
// @Failure      502  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Get(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var (
		reservations *domain.Page[domain.Reservation]
		services     *domain.Page[domain.Service]
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		reservations, err = h.reservations.Mine(ctx, domain.PageRequest{Size: dashboardReservations})
		return err
	})
	g.Go(func() error {
		var err error
		services, err = h.catalog.List(ctx, domain.PageRequest{Size: dashboardServices})
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Greeting:     id.FullName(),
		Stats:        summarize(reservations.Content),
		Reservations: reservations.Content,
		Services:     services.Content,
	})
}

func summarize(rs []domain.Reservation) dashboardStats {
	var st dashboardStats
	seen := make(map[int64]struct{}, len(rs))
	for _, r := range rs {
		switch r.Status {
		case domain.ReservationConfirmed:
			st.ActiveReservations++
		case domain.ReservationCompleted:
			st.Completed++
		}
		st.TotalSpent += r.TotalAmount
		seen[r.ServiceID] = struct{}{}
	}
	st.ServicesUsed = len(seen)
	return st
}
