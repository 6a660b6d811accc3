// Package llm provides clients for the text generation service.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"childsim/internal/prompt"
)

// Client generates text from an assembled prompt.
type Client interface {
	// Generate sends the prompt and returns the raw response text.
	// It makes exactly one request; retry policy lives with the caller.
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
	// Model returns the model identifier for provenance.
	Model() string
}

// ErrRateLimited is returned when the service rejects a request with
// HTTP 429.
var ErrRateLimited = errors.New("llm: rate limited")

// ServiceError is a non-2xx response from the generation service.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("llm: service returned %d: %s", e.Status, e.Body)
}

// IsTransient reports whether err is worth retrying: rate limits,
// timeouts, temporary network failures, and server-side errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Status == 429 || svcErr.Status >= 500
	}
	return false
}

// Config holds the connection settings shared by all providers.
type Config struct {
	BaseURL            string
	APIKey             string
	Model              string
	Timeout            time.Duration
	Temperature        float64
	MinRequestInterval time.Duration
}

// New returns a client for the named provider.
func New(provider string, cfg Config) (Client, error) {
	switch provider {
	case "openai", "":
		return NewOpenAIClient(cfg), nil
	case "ollama":
		return NewOllamaClient(cfg), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", provider)
	}
}
