// Package llm provides chat clients for external model backends. All clients
// implement domain.ChatClient; generation failures are expected and degrade
// to the persona simulator at the service layer.
package llm

import (
	"fmt"

	"github.com/kindred-ai/kindred/internal/domain"
)

// Provider constants
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
	ProviderNone   = "none"
)

// NewClient creates a chat client based on the provider name. The "none"
// provider returns a nil client, meaning the persona simulator handles every
// turn. Returns an error for unknown providers or missing API keys.
func NewClient(provider, apiKey, host string) (domain.ChatClient, error) {
	switch provider {
	case ProviderOllama:
		return NewOllamaClient(host), nil

	case ProviderOpenAI:
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for OpenAI provider")
		}
		return NewOpenAIClient(apiKey), nil

	case ProviderMock:
		return NewMockClient(), nil

	case ProviderNone:
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: ollama, openai, mock, none)", provider)
	}
}
