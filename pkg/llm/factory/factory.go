package factory

import (
	"fmt"

	"notechat-be/pkg/llm"
	"notechat-be/pkg/llm/gemini"
	"notechat-be/pkg/llm/ollama"
)

// NewLLMProvider selects an LLM backend by name.
// Supported: "gemini", "ollama".
func NewLLMProvider(provider, model, ollamaBaseURL, geminiAPIKey string) (llm.LLMProvider, error) {
	switch provider {
	case "gemini":
		if geminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(geminiAPIKey, model), nil
	case "ollama":
		if ollamaBaseURL == "" {
			return nil, fmt.Errorf("ollama provider requires a base URL")
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", provider)
	}
}
