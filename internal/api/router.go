package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/aura-home/aura-client/internal/api/handler"
	"github.com/aura-home/aura-client/internal/api/middleware"
	"github.com/aura-home/aura-client/internal/core/guard"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// Deps is everything the view shell talks to.
type Deps struct {
	Session      ports.SessionStore
	Catalog      ports.CatalogService
	Technicians  ports.TechnicianService
	Reservations ports.ReservationService
	Reviews      ports.ReviewService
	Payments     ports.PaymentService
	Users        ports.UserService

	Rules       *guard.Rules
	Paths       guard.Paths
	PhoneRegion string

	// APIBaseURL and Redis feed the readiness probe. Redis may be nil.
	APIBaseURL string
	Redis      redis.Cmdable

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	v := handler.NewValidator(d.PhoneRegion)
	e.Validator = v
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log, d.Paths)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLog(d.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Session, d.Rules, d.Paths, v)
	profileHandler := handler.NewProfileHandler(d.Session, d.Users, v)
	dashboardHandler := handler.NewDashboardHandler(d.Reservations, d.Catalog)
	catalogHandler := handler.NewCatalogHandler(d.Catalog, d.Technicians)
	technicianHandler := handler.NewTechnicianHandler(d.Technicians, d.Reviews)
	bookingHandler := handler.NewBookingHandler(d.Reservations, d.Payments, d.Reviews)

	// --- Health probes and metrics (outside the guard) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.APIBaseURL, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – is the booking API up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Views: every route below goes through the access guard ---
	guarded := middleware.Guard(d.Session, d.Rules, d.Paths, d.Log)

	e.POST("/login", authHandler.Login, guarded)
	e.POST("/register", authHandler.Register, guarded)
	e.POST("/logout", authHandler.Logout, guarded)
	e.GET("/session", authHandler.Session, guarded)

	e.GET("/dashboard", dashboardHandler.Get, guarded)
	e.GET("/profile", profileHandler.Get, guarded)
	e.PUT("/profile", profileHandler.Update, guarded)

	e.GET("/services", catalogHandler.List, guarded)
	e.GET("/services/:id", catalogHandler.Get, guarded)
	e.GET("/technicians", technicianHandler.List, guarded)
	e.GET("/technicians/:id", technicianHandler.Get, guarded)

	e.GET("/reservations", bookingHandler.ListReservations, guarded)
	e.POST("/reservations", bookingHandler.CreateReservation, guarded)
	e.PATCH("/reservations/:id/cancel", bookingHandler.CancelReservation, guarded)

	e.POST("/payments", bookingHandler.CreatePayment, guarded)
	e.GET("/payments/:id", bookingHandler.GetPayment, guarded)
	e.PATCH("/payments/:id/process", bookingHandler.ProcessPayment, guarded)
	e.PATCH("/payments/:id/refund", bookingHandler.RefundPayment, guarded)

	e.POST("/reviews", bookingHandler.CreateReview, guarded)
	e.DELETE("/reviews/:id", bookingHandler.DeleteReview, guarded)

	e.GET("/admin/technicians", technicianHandler.Admin, guarded)

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/services")
	}, guarded)

	return e
}
