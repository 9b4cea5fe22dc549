package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

type TechnicianService struct {
	api ports.Requester
}

func NewTechnicianService(api ports.Requester) *TechnicianService {
	return &TechnicianService{api: api}
}

func (s *TechnicianService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Technician], error) {
	var out domain.Page[domain.Technician]
	err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: pathTechnicians, Query: pageQuery(page, 10)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TechnicianService) Get(ctx context.Context, id int64) (*domain.Technician, error) {
	var out domain.Technician
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resource(pathTechnicians, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search filters by specialty and minimum rating; unset filters are left
// out of the query.
func (s *TechnicianService) Search(ctx context.Context, filter domain.TechnicianSearch) (*domain.Page[domain.Technician], error) {
	q := pageQuery(filter.PageRequest, 10)
	if filter.Specialty != "" {
		q.Set("specialty", string(filter.Specialty))
	}
	if filter.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}

	var out domain.Page[domain.Technician]
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: pathTechnicians + "/search", Query: q}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *TechnicianService) ByService(ctx context.Context, serviceID int64) ([]domain.Technician, error) {
	var out []domain.Technician
	path := resource(pathTechnicians+"/by-service", serviceID)
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: path}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TechnicianService) Update(ctx context.Context, id int64, in domain.TechnicianUpdate) (*domain.Technician, error) {
	var out domain.Technician
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPut, Path: resource(pathTechnicians, id), Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
