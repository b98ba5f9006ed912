package llm

import (
	"context"
	"errors"
)

// Client abstracts LLM providers for external tool suggestions.
type Client interface {
	GenerateText(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt carries the system framing and user request for one completion.
type Prompt struct {
	System string
	User   string
}

// ErrUnavailable is returned when no provider is configured or the provider
// cannot be reached. Callers treat it as a signal to fall back to catalog-only
// output, never as a report failure.
var ErrUnavailable = errors.New("llm unavailable")

// PlaceholderClient is the stand-in when no provider is configured.
type PlaceholderClient struct{}

// GenerateText returns ErrUnavailable.
func (PlaceholderClient) GenerateText(ctx context.Context, prompt Prompt) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrUnavailable
}
