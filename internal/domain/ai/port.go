package ai

import "context"

// Client is the completion port: one prompt in, raw response text out.
// Implementations perform exactly one request-response exchange, no retry
// and no streaming.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
