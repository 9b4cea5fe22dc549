package service

import (
	"context"
	"encoding/json"

	"github.com/aura-home/aura-client/internal/core/ports"
)

// stubRequester records every request and answers with a canned payload
// or error.
type stubRequester struct {
	requests []ports.Request
	payload  string
	err      error
}

func (s *stubRequester) Do(_ context.Context, req ports.Request, out any) error {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return s.err
	}
	if out == nil || s.payload == "" {
		return nil
	}
	return json.Unmarshal([]byte(s.payload), out)
}

func (s *stubRequester) last() ports.Request {
	return s.requests[len(s.requests)-1]
}
