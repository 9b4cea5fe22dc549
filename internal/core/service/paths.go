package service

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/aura-home/aura-client/internal/core/domain"
)

const (
	pathLogin              = "/api/auth/login"
	pathRegisterUser       = "/api/auth/register"
	pathRegisterTechnician = "/api/auth/register/technician"
	pathCurrentUser        = "/api/auth/me"
	pathLogout             = "/api/auth/logout"

	pathUsers        = "/api/users"
	pathServices     = "/api/services"
	pathTechnicians  = "/api/technicians"
	pathReservations = "/api/reservations"
	pathReviews      = "/api/reviews"
	pathPayments     = "/api/payments"
)

func resource(base string, id int64, rest ...string) string {
	p := fmt.Sprintf("%s/%d", base, id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

// pageQuery applies the backend defaults when the caller leaves size unset.
func pageQuery(p domain.PageRequest, defaultSize int) url.Values {
	size := p.Size
	if size <= 0 {
		size = defaultSize
	}
	page := p.Page
	if page < 0 {
		page = 0
	}
	return url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
}
