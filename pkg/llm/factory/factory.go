package factory

import (
	"ai-concierge-be/pkg/llm"
	"ai-concierge-be/pkg/llm/ollama"
	"ai-concierge-be/pkg/llm/openai"
	"fmt"
)

// NewLLMProvider selects a provider by name. Each provider gets its own base
// URL; the OpenAI provider falls back to the public endpoint when its URL is
// empty.
func NewLLMProvider(providerType, modelName, ollamaBaseURL, openaiBaseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if ollamaBaseURL == "" {
			ollamaBaseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(ollamaBaseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(openaiBaseURL, apiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
