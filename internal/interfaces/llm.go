package interfaces

import (
	"context"
)

// GenerateRequest describes a single text-in, text-out completion call.
type GenerateRequest struct {
	// System is an optional system instruction prepended to the call.
	System string

	// Prompt is the user-facing text to complete.
	Prompt string

	// Temperature overrides the configured sampling temperature when set.
	// A pointer so zero (deterministic decoding) is distinguishable from unset.
	Temperature *float32

	// MaxOutputTokens caps the generated text length. Zero uses the
	// configured default.
	MaxOutputTokens int32
}

// TextGenerator is the opaque generative-model capability used by the
// chat responder and the narrative summarizer. Implementations fail
// closed: any upstream error is returned, never a partial result.
type TextGenerator interface {
	// Generate produces a completion for the request.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// HealthCheck verifies the model endpoint is reachable and responding.
	HealthCheck(ctx context.Context) error

	// Close releases client resources.
	Close() error
}

// SentimentScorer produces a compound polarity score in [-1, 1] for a
// piece of free text.
type SentimentScorer interface {
	Compound(text string) float64
}
