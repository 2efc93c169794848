package llm

import (
	"context"

	"github.com/kindred-ai/kindred/internal/domain"
)

// MockClient is a configurable chat client for testing. Set the response
// fields to control what each method returns.
type MockClient struct {
	ChatResponse    string
	ChatError       error
	ListResponse    []string
	ListError       error

	// Call tracking for assertions
	ChatCalls []struct {
		System   string
		Messages []domain.Message
	}
	ListCalls int
}

func NewMockClient() *MockClient {
	return &MockClient{
		ChatResponse: "Mock response",
		ListResponse: []string{"mock-model"},
	}
}

func (c *MockClient) Chat(ctx context.Context, system string, messages []domain.Message) (string, error) {
	c.ChatCalls = append(c.ChatCalls, struct {
		System   string
		Messages []domain.Message
	}{system, messages})
	if c.ChatError != nil {
		return "", c.ChatError
	}
	return c.ChatResponse, nil
}

func (c *MockClient) ListModels(ctx context.Context) ([]string, error) {
	c.ListCalls++
	if c.ListError != nil {
		return nil, c.ListError
	}
	return c.ListResponse, nil
}
