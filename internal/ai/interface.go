package ai

import "context"

// Generator defines the interface for generative text providers.
// Implementations may fail or return content that is not valid JSON; the
// engines that consume them must tolerate both.
type Generator interface {
	// Generate sends a prompt and returns the raw model response text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the name of the provider (e.g., "gemini", "openai")
	Name() string
}
