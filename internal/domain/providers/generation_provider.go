package providers

import (
	"context"

	"github.com/providervault/ai-service/internal/domain/entities"
)

// CompletionRequest is one model invocation. Temperature and MaxTokens
// are per-intent presets; the implementation clamps them to its
// configured ceilings. History carries prior conversation turns for
// multi-turn prompts and may be nil.
type CompletionRequest struct {
	System      string
	History     []entities.ConversationTurn
	User        string
	Temperature float32
	MaxTokens   int
}

// GenerationProvider invokes the external language model and returns its
// raw text output. Implementations own timeout and retry behavior:
// transient failures are retried up to a configured ceiling and surface
// as UPSTREAM_UNAVAILABLE, non-retryable rejections surface as
// UPSTREAM_REJECTED. Tests supply a deterministic stub.
type GenerationProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
