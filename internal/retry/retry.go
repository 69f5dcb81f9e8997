// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package retry wraps a single generation attempt with capped exponential
// backoff. Only failures classified as transient by the llm package are
// retried; permanent failures surface immediately.
package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/anilsoylu/ContentForge/internal/llm"
)

// Defaults used when a Policy field is zero.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 2 * time.Second
	DefaultMaxDelay    = 30 * time.Second
)

// RetryExhaustedError reports that every attempt failed transiently. Last
// carries the final underlying cause.
type RetryExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Last }

// Policy holds the backoff knobs. The zero value uses the defaults above.
// Tests set tiny delays to avoid real sleeps.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// BaseDelay is the wait after the first transient failure; the wait
	// doubles each attempt up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// Jitter adds up to 50% random extra delay to each wait, spreading
	// retries from concurrent jobs.
	Jitter bool
}

// Operation is one generation attempt.
type Operation func(ctx context.Context) (string, error)

// Do runs op until it succeeds, fails permanently, or exhausts the attempt
// budget. It returns the produced text, the number of attempts made, and
// one of: nil, the permanent error unchanged, ctx.Err() when cancelled
// during a wait, or *RetryExhaustedError.
func (p Policy) Do(ctx context.Context, op Operation) (string, int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := op(ctx)
		if err == nil {
			return text, attempt + 1, nil
		}
		if !llm.IsTransient(err) {
			return "", attempt + 1, err
		}
		lastErr = err

		// No wait after the final attempt.
		if attempt == maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", attempt + 1, ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}

	return "", maxAttempts, &RetryExhaustedError{Attempts: maxAttempts, Last: lastErr}
}

// delay computes the wait after the given 0-based attempt:
// min(base << attempt, max), plus up to 50% jitter when enabled.
func (p Policy) delay(attempt int) time.Duration {
	base := p.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	max := p.MaxDelay
	if max <= 0 {
		max = DefaultMaxDelay
	}

	d := base << uint(attempt)
	if d > max || d <= 0 {
		d = max
	}
	if p.Jitter {
		d += time.Duration(rand.Int63n(int64(d)/2 + 1))
		if d > max {
			d = max
		}
	}
	return d
}
