package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// CatalogHandler serves the public service catalogue.
type CatalogHandler struct {
	catalog     ports.CatalogService
	technicians ports.TechnicianService
}

func NewCatalogHandler(catalog ports.CatalogService, technicians ports.TechnicianService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, technicians: technicians}
}

type serviceDetailResponse struct {
	Service     *domain.Service     `json:"service"`
	Technicians []domain.Technician `json:"technicians"`
}

// List returns the catalogue. With q it searches, with only category it
// filters, otherwise it pages.
//
// @Summary      List services
// @Tags         catalogue
// @Produce      json
// @Param        q         query     string  false  "Free text search"
// @Param        category  query     string  false  "Service category"
// @Param        page      query     int     false  "Page (0-based)"
// @Param        size      query     int     false  "Page size"
// @Success      200       {object}  domain.Page[domain.Service]
// @Failure      400       {object}  map[string]string
// @Router       /services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	query := strings.TrimSpace(c.QueryParam("q"))

	category := domain.ServiceCategory(strings.ToUpper(c.QueryParam("category")))
	if category != "" && !category.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown category "+string(category))
	}

	switch {
	case query != "":
		out, err := h.catalog.Search(ctx, query, category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, out)
	case category != "":
		out, err := h.catalog.ByCategory(ctx, category)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, out)
	}

	req, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.catalog.List(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get returns one service with the technicians offering it.
//
// @Summary      Service detail
// @Tags         catalogue
// @Produce      json
// @Param        id   path      int  true  "Service ID"
// @Success      200  {object}  serviceDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /services/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var resp serviceDetailResponse
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		resp.Service, err = h.catalog.Get(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		resp.Technicians, err = h.technicians.ByService(ctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if resp.Technicians == nil {
		resp.Technicians = []domain.Technician{}
	}
	return c.JSON(http.StatusOK, resp)
}
