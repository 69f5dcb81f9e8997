// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openRouterBaseURL is the OpenRouter OpenAI-compatible endpoint.
// Package-level var for test substitution.
var openRouterBaseURL = "https://openrouter.ai/api/v1"

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 4000
)

// OpenRouter is a Transport over the OpenRouter chat-completions API.
type OpenRouter struct {
	Model string

	client openai.Client
}

// NewOpenRouter builds an OpenRouter transport. siteURL is sent as the
// HTTP-Referer attribution header when non-empty.
func NewOpenRouter(apiKey, model, siteURL string) (*OpenRouter, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter api key missing")
	}
	if model == "" {
		return nil, errors.New("model identifier is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(openRouterBaseURL),
		option.WithHeader("X-Title", "ContentForge"),
		// The retry policy owns retries; the SDK must not add its own.
		option.WithMaxRetries(0),
	}
	if siteURL != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", siteURL))
	}
	return &OpenRouter{Model: model, client: openai.NewClient(opts...)}, nil
}

// Generate sends one chat completion and returns the produced text. Failures
// are classified into *TransientError or *PermanentError.
func (o *OpenRouter) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
		Temperature: openai.Float(defaultTemperature),
		MaxTokens:   openai.Int(defaultMaxTokens),
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &PermanentError{Err: errors.New("empty choices in completion response")}
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", &PermanentError{Err: errors.New("empty message content in completion response")}
	}
	return text, nil
}

// classify maps an openai-go error to the transient/permanent taxonomy.
// Rate limits, server errors, timeouts, and connection failures are
// transient; every other API rejection is permanent.
func classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusTooManyRequests,
			apierr.StatusCode == http.StatusRequestTimeout,
			apierr.StatusCode >= 500:
			return &TransientError{Status: apierr.StatusCode, Err: err}
		default:
			return &PermanentError{Status: apierr.StatusCode, Err: err}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransientError{Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Err: err}
	}
	if errors.Is(err, context.Canceled) {
		// Run-level cancellation, not an API failure.
		return err
	}

	// Connection-level failures without a status are worth retrying.
	return &TransientError{Err: fmt.Errorf("calling completion api: %w", err)}
}
