package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aura-home/aura-client/internal/core/domain"
	"github.com/aura-home/aura-client/internal/core/ports"
)

// CatalogService reads and maintains the list of bookable services.
type CatalogService struct {
	api ports.Requester
}

func NewCatalogService(api ports.Requester) *CatalogService {
	return &CatalogService{api: api}
}

func (s *CatalogService) List(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Service], error) {
	var out domain.Page[domain.Service]
	err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: pathServices, Query: pageQuery(page, 20)}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	var out domain.Service
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: resource(pathServices, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CatalogService) ByCategory(ctx context.Context, category domain.ServiceCategory) ([]domain.Service, error) {
	var out []domain.Service
	path := pathServices + "/category/" + url.PathEscape(string(category))
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: path}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) Search(ctx context.Context, query string, category domain.ServiceCategory) ([]domain.Service, error) {
	q := url.Values{"query": {query}}
	if category != "" {
		q.Set("category", string(category))
	}
	var out []domain.Service
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodGet, Path: pathServices + "/search", Query: q}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CatalogService) Create(ctx context.Context, in domain.ServiceInput) (*domain.Service, error) {
	var out domain.Service
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPost, Path: pathServices, Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CatalogService) Update(ctx context.Context, id int64, in domain.ServiceInput) (*domain.Service, error) {
	var out domain.Service
	if err := s.api.Do(ctx, ports.Request{Method: http.MethodPut, Path: resource(pathServices, id), Body: in}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, ports.Request{Method: http.MethodDelete, Path: resource(pathServices, id)}, nil)
}
