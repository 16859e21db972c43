package factory

import (
	"fmt"

	"smarterstarts-be/pkg/llm"
	"smarterstarts-be/pkg/llm/anthropic"
	"smarterstarts-be/pkg/llm/gemini"
	"smarterstarts-be/pkg/llm/ollama"
)

// ProviderConfig carries the settings needed by any supported backend.
type ProviderConfig struct {
	Provider      string // "gemini", "ollama", "anthropic"
	Model         string
	GeminiAPIKey  string
	AnthropicKey  string
	OllamaBaseURL string
}

func NewLLMProvider(cfg ProviderConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(cfg.GeminiAPIKey, cfg.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.Model), nil
	case "anthropic":
		return anthropic.NewFromAPIKey(cfg.AnthropicKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
