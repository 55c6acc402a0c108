package ai

import (
	"context"

	"webcv-utils/pkg/models"
)

// Request carries everything an adapter needs for a single generation call
type Request struct {
	Model       models.AIModel
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Provider is a single AI backend able to serve both generation tasks.
//
// GenerateCoverLetter degrades instead of failing: when the upstream call
// breaks it returns a human-readable diagnostic string with a nil error, so
// a broken letter never sinks the resume half of an application.
// GenerateTailoredResume returns the raw model text and typed errors
// (transport, upstream, empty response) for the caller to handle.
type Provider interface {
	Name() models.AIProvider
	GenerateCoverLetter(ctx context.Context, req Request) (string, error)
	GenerateTailoredResume(ctx context.Context, req Request) (string, error)
}
