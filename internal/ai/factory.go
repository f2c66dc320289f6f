package ai

import (
	"fmt"
	"log"
	"strings"

	"synaptech/internal/config"
)

// CreateGenerator creates a generative AI provider based on configuration.
// A nil Generator with a nil error means no provider is configured; callers
// run their deterministic fallback path in that case.
func CreateGenerator(cfg *config.Config) (Generator, error) {
	provider := strings.ToLower(cfg.AIProvider)
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		if cfg.GeminiKey == "" {
			log.Printf("[AI Factory] GEMINI_API_KEY not set, running without AI (fallback mode)")
			return nil, nil
		}
		log.Printf("[AI Factory] Creating Gemini provider (model: %s)", cfg.GeminiModel)
		return NewGeminiGenerator(cfg.GeminiKey, cfg.GeminiModel)
	case "openai":
		if cfg.OpenAIKey == "" {
			log.Printf("[AI Factory] OPENAI_API_KEY not set, running without AI (fallback mode)")
			return nil, nil
		}
		log.Printf("[AI Factory] Creating OpenAI provider (model: %s)", cfg.OpenAIModel)
		return NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s. Supported: gemini, openai", provider)
	}
}
