package service

import (
	"context"
	"net/http"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

type ReservationService struct {
	api ports.Requester
}

func NewReservationService(api ports.Requester) *ReservationService {
	return &ReservationService{api: api}
}

func (s *ReservationService) Create(ctx context.Context, in domain.CreateReservationRequest) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: pathReservations, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resource(pathReservations, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mine lists the signed-in user's reservations.
func (s *ReservationService) Mine(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Reservation], error) {
	var out domain.Page[domain.Reservation]
	err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: pathReservations + "/my", Query: pageQuery(page, 10)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	var out domain.Reservation
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPatch, Path: resource(pathReservations, id, "cancel")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ReviewService struct {
	api ports.Requester
}

func NewReviewService(api ports.Requester) *ReviewService {
	return &ReviewService{api: api}
}

func (s *ReviewService) Create(ctx context.Context, in domain.CreateReviewRequest) (*domain.Review, error) {
	var out domain.Review
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: pathReviews, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReviewService) ByTechnician(ctx context.Context, technicianID int64, page domain.PageRequest) (*domain.Page[domain.Review], error) {
	var out domain.Page[domain.Review]
	path := resource(pathReviews+"/technician", technicianID)
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: path, Query: pageQuery(page, 10)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ReviewService) ByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	var out []domain.Review
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resource(pathReviews+"/user", userID)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, ports.Request{Method: http.MethodDelete, Path: resource(pathReviews, id)}, nil)
}

type PaymentService struct {
	api ports.Requester
}

func NewPaymentService(api ports.Requester) *PaymentService {
	return &PaymentService{api: api}
}

func (s *PaymentService) Create(ctx context.Context, in domain.CreatePaymentRequest) (*domain.Payment, error) {
	var out domain.Payment
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: pathPayments, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	var out domain.Payment
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resource(pathPayments, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) ByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	var out domain.Payment
	path := resource(pathPayments+"/reservation", reservationID)
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) Process(ctx context.Context, id int64) (*domain.Payment, error) {
	var out domain.Payment
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPatch, Path: resource(pathPayments, id, "process")}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PaymentService) Refund(ctx context.Context, id int64, reason string) (*domain.Payment, error) {
	var out domain.Payment
	body := map[string]string{"reason": reason}
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPatch, Path: resource(pathPayments, id, "refund"), Body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UserService struct {
	api ports.Requester
}

func NewUserService(api ports.Requester) *UserService {
	return &UserService{api: api}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.Identity, error) {
	var out domain.Identity
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resource(pathUsers, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Update(ctx context.Context, id int64, in domain.UpdateProfileRequest) (*domain.Identity, error) {
	var out domain.Identity
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPut, Path: resource(pathUsers, id), Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
