package domain

import "errors"

var (
	ErrNoCredential      = errors.New("no credential")
	ErrCredentialExpired = errors.New("credential expired")
	ErrInvalidRole       = errors.New("invalid role")
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrMalformedResponse = errors.New("malformed response")
)
