package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// BookingHandler covers reservations, payments and reviews.
type BookingHandler struct {
	reservations ports.ReservationService
	payments     ports.PaymentService
	reviews      ports.ReviewService
}

func NewBookingHandler(reservations ports.ReservationService, payments ports.PaymentService, reviews ports.ReviewService) *BookingHandler {
	return &BookingHandler{reservations: reservations, payments: payments, reviews: reviews}
}

// --- Request types ---

type createReservationRequest struct {
	TechnicianID int64  `json:"technicianId" validate:"required,gt=0"`
	ServiceID    int64  `json:"serviceId"    validate:"required,gt=0"`
	ServiceDate  string `json:"serviceDate"  validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"startTime"    validate:"required,datetime=15:04"`
	Address      string `json:"address"      validate:"required,max=255"`
	Notes        string `json:"notes"        validate:"max=1000"`
}

type createPaymentRequest struct {
	ReservationID int64   `json:"reservationId" validate:"required,gt=0"`
	Amount        float64 `json:"amount"        validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=CREDIT_CARD DEBIT_CARD CASH BANK_TRANSFER MOBILE_WALLET"`
}

type refundRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type createReviewRequest struct {
	ReservationID int64  `json:"reservationId" validate:"required,gt=0"`
	Rating        int    `json:"rating"        validate:"required,min=1,max=5"`
	Comment       string `json:"comment"       validate:"max=1000"`
}

// --- Reservations ---

// ListReservations returns the signed-in user's reservations.
//
// @Summary      My reservations
// @Tags         reservations
// @Produce      json
// @Param        page  query     int  false  "Page (0-based)"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  domain.Page[domain.Reservation]
// @Failure      303
// @Router       /reservations [get]
func (h *BookingHandler) ListReservations(c echo.Context) error {
	req, err := pageParams(c)
	if err != nil {
		return err
	}
	page, err := h.reservations.Mine(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// CreateReservation books a technician for a service.
//
// @Summary      Book a service
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        body  body      createReservationRequest  true  "Reservation details"
// @Success      201   {object}  domain.Reservation
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /reservations [post]
func (h *BookingHandler) CreateReservation(c echo.Context) error {
	var req createReservationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.reservations.Create(c.Request().Context(), domain.CreateReservationRequest{
		TechnicianID: req.TechnicianID,
		ServiceID:    req.ServiceID,
		ServiceDate:  req.ServiceDate,
		StartTime:    req.StartTime,
		Address:      strings.TrimSpace(req.Address),
		Notes:        strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, res)
}

// CancelReservation handles PATCH /reservations/:id/cancel.
//
// @Summary      Cancel a reservation
// @Tags         reservations
// @Produce      json
// @Param        id   path      int  true  "Reservation ID"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /reservations/{id}/cancel [patch]
func (h *BookingHandler) CancelReservation(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	res, err := h.reservations.Cancel(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// --- Payments ---

// GetPayment handles GET /payments/:id.
//
// @Summary      Payment detail
// @Tags         payments
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  domain.Payment
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /payments/{id} [get]
func (h *BookingHandler) GetPayment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.payments.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePayment pays for a reservation.
//
// @Summary      Pay a reservation
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      createPaymentRequest  true  "Payment details"
// @Success      201   {object}  domain.Payment
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /payments [post]
func (h *BookingHandler) CreatePayment(c echo.Context) error {
	var req createPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	p, err := h.payments.Create(c.Request().Context(), domain.CreatePaymentRequest{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// ProcessPayment handles PATCH /payments/:id/process.
//
// @Summary      Process a payment
// @Tags         payments
// @Produce      json
// @Param        id   path      int  true  "Payment ID"
// @Success      200  {object}  domain.Payment
// @Failure      303
// @Failure      409  {object}  map[string]string
// @Router       /payments/{id}/process [patch]
func (h *BookingHandler) ProcessPayment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.payments.Process(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// RefundPayment handles PATCH /payments/:id/refund.
//
// @Summary      Refund a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Payment ID"
// @Param        body  body      refundRequest  true  "Refund reason"
// @Success      200   {object}  domain.Payment
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /payments/{id}/refund [patch]
func (h *BookingHandler) RefundPayment(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	var req refundRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.payments.Refund(c.Request().Context(), id, strings.TrimSpace(req.Reason))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// --- Reviews ---

// CreateReview rates a completed reservation.
//
// @Summary      Review a reservation
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /reviews [post]
func (h *BookingHandler) CreateReview(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	r, err := h.reviews.Create(c.Request().Context(), domain.CreateReviewRequest{
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Comment:       strings.TrimSpace(req.Comment),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// DeleteReview handles DELETE /reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Param        id   path  int  true  "Review ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{id} [delete]
func (h *BookingHandler) DeleteReview(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviews.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
