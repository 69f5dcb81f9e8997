// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completionBody = `{"choices":[{"message":{"role":"assistant","content":"generated text"}}]}`

// newTestTransport points an OpenRouter transport at a stub server.
func newTestTransport(t *testing.T, handler http.HandlerFunc) *OpenRouter {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	orig := openRouterBaseURL
	openRouterBaseURL = ts.URL
	t.Cleanup(func() { openRouterBaseURL = orig })

	transport, err := NewOpenRouter("test-key", "openai/gpt-4o-mini", "https://example.com")
	require.NoError(t, err)
	return transport
}

func TestNewOpenRouterValidation(t *testing.T) {
	_, err := NewOpenRouter("", "openai/gpt-4o-mini", "")
	assert.Error(t, err)

	_, err = NewOpenRouter("key", "", "")
	assert.Error(t, err)
}

func TestGenerateSuccess(t *testing.T) {
	var sawAuth atomic.Bool
	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer test-key" {
			sawAuth.Store(true)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(completionBody))
	})

	text, err := transport.Generate(context.Background(), Request{System: "sys", Prompt: "write"})
	require.NoError(t, err)
	assert.Equal(t, "generated text", text)
	assert.True(t, sawAuth.Load())
}

func TestGenerateClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantTransient bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, wantTransient: true},
		{name: "server error", status: http.StatusInternalServerError, wantTransient: true},
		{name: "bad gateway", status: http.StatusBadGateway, wantTransient: true},
		{name: "bad request", status: http.StatusBadRequest, wantTransient: false},
		{name: "unauthorized", status: http.StatusUnauthorized, wantTransient: false},
		{name: "forbidden", status: http.StatusForbidden, wantTransient: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"error":{"message":"nope"}}`))
			})

			_, err := transport.Generate(context.Background(), Request{Prompt: "write"})
			require.Error(t, err)
			assert.Equal(t, tt.wantTransient, IsTransient(err))

			if tt.wantTransient {
				var te *TransientError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, tt.status, te.Status)
			} else {
				var pe *PermanentError
				require.True(t, errors.As(err, &pe))
				assert.Equal(t, tt.status, pe.Status)
			}
		})
	}
}

func TestGenerateEmptyChoicesIsPermanent(t *testing.T) {
	transport := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := transport.Generate(context.Background(), Request{Prompt: "write"})
	require.Error(t, err)
	assert.False(t, IsTransient(err))
}

func TestIsTransientOnWrappedErrors(t *testing.T) {
	wrapped := &TransientError{Err: errors.New("inner")}
	assert.True(t, IsTransient(wrapped))
	assert.False(t, IsTransient(&PermanentError{Err: errors.New("inner")}))
	assert.False(t, IsTransient(errors.New("plain")))
	assert.False(t, IsTransient(nil))
}
