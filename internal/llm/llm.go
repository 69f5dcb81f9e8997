// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm abstracts the generation API behind a Transport interface and
// classifies its failures as transient (retryable) or permanent.
package llm

import (
	"context"
	"errors"
	"fmt"
)

// Request is one generation call: a system prompt and a user prompt.
type Request struct {
	System string
	Prompt string
}

// Transport sends one generation request and returns the produced text.
// Implementations must return *TransientError or *PermanentError so callers
// can decide whether to retry.
type Transport interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// TransientError is an API failure expected to resolve on retry: rate
// limits, timeouts, connection failures, server errors.
type TransientError struct {
	// Status is the HTTP status when one was received, 0 otherwise.
	Status int
	Err    error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transient api error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("transient api error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError is an API failure that will not resolve on retry: bad
// requests, auth failures, malformed responses.
type PermanentError struct {
	Status int
	Err    error
}

func (e *PermanentError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("permanent api error (status %d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("permanent api error: %v", e.Err)
}

func (e *PermanentError) Unwrap() error { return e.Err }

// IsTransient reports whether err should be retried. This predicate is the
// retry contract: anything not explicitly transient is treated as permanent.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
