package ports

import (
	"context"
	"net/url"

	"github.com/aura-home/aura-client/internal/core/domain"
)

// Request describes one call to the remote API. Path is relative to the
// configured base URL.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// Requester sends requests through the request pipeline. A call that was
// sent and failed always yields a *domain.APIError; encoding and decoding
// problems are reported as wrapped domain.ErrMalformedResponse.
type Requester interface {
	Do(ctx context.Context, req Request, out any) error
}

// UnauthorizedHandler is told about every 401 after the pipeline has
// cleared the credential.
type UnauthorizedHandler func(ctx context.Context, err *domain.APIError)
