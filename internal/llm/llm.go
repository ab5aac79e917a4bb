package llm

import (
	"context"
	"errors"
)

// Completer sends a single prompt to a generative model and returns the full generated text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	ErrNotConfigured = errors.New("completion service is not configured")
	ErrEmptyResponse = errors.New("completion service returned no text")
)

// Unconfigured is the Completer used when no API key is available. Every call fails with
// ErrNotConfigured, so the rest of the service keeps working.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
