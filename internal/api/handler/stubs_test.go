package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/aura-home/aura-client/internal/core/domain"
)

type stubSession struct {
	state      domain.SessionState
	loginFn    func(email, password string) error
	registerFn func(req domain.RegisterRequest, role domain.Role) error
	logouts    int
	logoutErr  error
	identities []domain.Identity
}

func (s *stubSession) State() domain.SessionState    { return s.state }
func (s *stubSession) Restore(context.Context) error { return nil }
func (s *stubSession) ClearError()                   { s.state.Error = "" }

func (s *stubSession) SetIdentity(identity domain.Identity) {
	s.identities = append(s.identities, identity)
}

func (s *stubSession) Login(_ context.Context, email, password string) error {
	return s.loginFn(email, password)
}

func (s *stubSession) Register(_ context.Context, req domain.RegisterRequest, role domain.Role) error {
	return s.registerFn(req, role)
}

func (s *stubSession) Logout(context.Context) error {
	s.logouts++
	s.state = domain.SessionState{Status: domain.StatusUnauthenticated}
	return s.logoutErr
}

type stubCatalog struct {
	listFn func(page domain.PageRequest) (*domain.Page[domain.Service], error)
	getFn  func(id int64) (*domain.Service, error)
}

func (s *stubCatalog) List(_ context.Context, page domain.PageRequest) (*domain.Page[domain.Service], error) {
	return s.listFn(page)
}
func (s *stubCatalog) Get(_ context.Context, id int64) (*domain.Service, error) { return s.getFn(id) }
func (s *stubCatalog) ByCategory(context.Context, domain.ServiceCategory) ([]domain.Service, error) {
	return nil, nil
}
func (s *stubCatalog) Search(context.Context, string, domain.ServiceCategory) ([]domain.Service, error) {
	return nil, nil
}
func (s *stubCatalog) Create(context.Context, domain.ServiceInput) (*domain.Service, error) {
	return nil, nil
}
func (s *stubCatalog) Update(context.Context, int64, domain.ServiceInput) (*domain.Service, error) {
	return nil, nil
}
func (s *stubCatalog) Delete(context.Context, int64) error { return nil }

type stubTechnicians struct {
	byServiceFn func(serviceID int64) ([]domain.Technician, error)
}

func (s *stubTechnicians) List(context.Context, domain.PageRequest) (*domain.Page[domain.Technician], error) {
	return &domain.Page[domain.Technician]{}, nil
}
func (s *stubTechnicians) Get(context.Context, int64) (*domain.Technician, error) { return nil, nil }
func (s *stubTechnicians) Search(context.Context, domain.TechnicianSearch) (*domain.Page[domain.Technician], error) {
	return &domain.Page[domain.Technician]{}, nil
}
func (s *stubTechnicians) ByService(_ context.Context, id int64) ([]domain.Technician, error) {
	return s.byServiceFn(id)
}
func (s *stubTechnicians) Update(context.Context, int64, domain.TechnicianUpdate) (*domain.Technician, error) {
	return nil, nil
}

type stubReservations struct {
	mineFn  func(page domain.PageRequest) (*domain.Page[domain.Reservation], error)
	created []domain.CreateReservationRequest
}

func (s *stubReservations) Create(_ context.Context, in domain.CreateReservationRequest) (*domain.Reservation, error) {
	s.created = append(s.created, in)
	return &domain.Reservation{ID: 1, Status: domain.ReservationPending}, nil
}
func (s *stubReservations) Get(context.Context, int64) (*domain.Reservation, error) { return nil, nil }
func (s *stubReservations) Mine(_ context.Context, page domain.PageRequest) (*domain.Page[domain.Reservation], error) {
	return s.mineFn(page)
}
func (s *stubReservations) Cancel(context.Context, int64) (*domain.Reservation, error) {
	return &domain.Reservation{Status: domain.ReservationCancelled}, nil
}

type stubUsers struct {
	updated []domain.UpdateProfileRequest
}

func (s *stubUsers) Get(context.Context, int64) (*domain.Identity, error) { return nil, nil }
func (s *stubUsers) Update(_ context.Context, id int64, in domain.UpdateProfileRequest) (*domain.Identity, error) {
	s.updated = append(s.updated, in)
	return &domain.Identity{ID: id, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, Role: domain.RoleUser}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator("PE")
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
