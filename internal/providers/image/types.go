package image

import (
	"context"

	"github.com/songofhawk/Giga-Peach/internal/domain"
)

// Request is the normalized payload handed to any generator. Reference
// images are opaque: data URLs or remote URLs, passed through in order.
type Request struct {
	Prompt          string
	ReferenceImages []string
	AspectRatio     domain.AspectRatio
	Resolution      domain.Resolution
	Credential      string
	Endpoint        string
}

// Generator is the external generation call. The orchestrator treats it as
// opaque: it returns a URL for the produced image or an error that is mapped
// onto the owning task.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
