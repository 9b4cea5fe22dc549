package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind is the normalized category of a failed API call.
type ErrorKind string

const (
	KindNetwork         ErrorKind = "network-error"
	KindInvalidInput    ErrorKind = "invalid-input"
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not-found"
	KindConflict        ErrorKind = "conflict"
	KindServer          ErrorKind = "server-error"
	KindUnknown         ErrorKind = "unknown"
)

// ClassifyStatus maps an HTTP status of a failed response to its kind.
// Status 0 means no response was received.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status == 0:
		return KindNetwork
	case status == http.StatusBadRequest:
		return KindInvalidInput
	case status == http.StatusUnauthorized:
		return KindUnauthenticated
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindUnknown
	}
}

// UserMessage is the notification shown when the server sent no message.
func (k ErrorKind) UserMessage() string {
	switch k {
	case KindNetwork:
		return "Network error. Please check your connection."
	case KindInvalidInput:
		return "Invalid request. Please check your input."
	case KindUnauthenticated:
		return "Session expired. Please login again."
	case KindForbidden:
		return "You do not have permission to perform this action."
	case KindNotFound:
		return "Resource not found."
	case KindConflict:
		return "Conflict. This resource already exists."
	case KindServer:
		return "Server error. Please try again later."
	default:
		return "An unexpected error occurred."
	}
}

// HTTPStatus is the status the view shell answers with for this kind.
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindNetwork:
		return http.StatusBadGateway
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the normalized failure of one remote call. A nil Status means
// no response was received. Values are never mutated after creation.
type APIError struct {
	Status    *int      `json:"status"`
	Kind      ErrorKind `json:"kind"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp string    `json:"timestamp"`

	cause error
}

// NewAPIError builds an APIError for a received response. An empty message
// falls back to the kind's user message, an empty timestamp to now.
func NewAPIError(status int, message, path, timestamp string) *APIError {
	kind := ClassifyStatus(status)
	if message == "" {
		message = kind.UserMessage()
	}
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	s := status
	return &APIError{Status: &s, Kind: kind, Message: message, Path: path, Timestamp: timestamp}
}

// NewNetworkError builds an APIError for a call that got no response.
func NewNetworkError(path string, cause error) *APIError {
	return &APIError{
		Kind:      KindNetwork,
		Message:   KindNetwork.UserMessage(),
		Path:      path,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		cause:     cause,
	}
}

func (e *APIError) Error() string {
	if e.Status == nil {
		if e.cause != nil {
			return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.cause)
		}
		return fmt.Sprintf("%s %s", e.Kind, e.Path)
	}
	return fmt.Sprintf("%s (%d) %s: %s", e.Kind, *e.Status, e.Path, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

// StatusCode returns the HTTP status, or 0 when no response was received.
func (e *APIError) StatusCode() int {
	if e.Status == nil {
		return 0
	}
	return *e.Status
}

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Kind == kind
}
