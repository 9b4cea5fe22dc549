package ports

import (
	"context"

	"github.com/aura-home/aura-client/internal/core/domain"
)

type CatalogService interface {
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Service], error)
	Get(ctx context.Context, id int64) (*domain.Service, error)
	ByCategory(ctx context.Context, category domain.ServiceCategory) ([]domain.Service, error)
	Search(ctx context.Context, query string, category domain.ServiceCategory) ([]domain.Service, error)
	Create(ctx context.Context, in domain.ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, id int64, in domain.ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
}

type TechnicianService interface {
	List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Technician], error)
	Get(ctx context.Context, id int64) (*domain.Technician, error)
	Search(ctx context.Context, filter domain.TechnicianSearch) (*domain.Page[domain.Technician], error)
	ByService(ctx context.Context, serviceID int64) ([]domain.Technician, error)
	Update(ctx context.Context, id int64, in domain.TechnicianUpdate) (*domain.Technician, error)
}

type ReservationService interface {
	Create(ctx context.Context, in domain.CreateReservationRequest) (*domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	Mine(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Reservation], error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, error)
}

type ReviewService interface {
	Create(ctx context.Context, in domain.CreateReviewRequest) (*domain.Review, error)
	ByTechnician(ctx context.Context, technicianID int64, page domain.PageRequest) (*domain.Page[domain.Review], error)
	ByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentService interface {
	Create(ctx context.Context, in domain.CreatePaymentRequest) (*domain.Payment, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	ByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error)
	Process(ctx context.Context, id int64) (*domain.Payment, error)
	Refund(ctx context.Context, id int64, reason string) (*domain.Payment, error)
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.Identity, error)
	Update(ctx context.Context, id int64, in domain.UpdateProfileRequest) (*domain.Identity, error)
}
