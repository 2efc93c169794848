package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kindred-ai/kindred/internal/domain"
)

const defaultOllamaHost = "http://localhost:11434"

// candidateModels is the fixed preference order tried on each chat call.
// "model not found" moves to the next candidate; any other failure aborts.
var candidateModels = []string{"llama3.1:8b", "llama3:latest", "mistral:7b"}

// perModelTimeout bounds each candidate attempt, not the whole chain.
const perModelTimeout = 60 * time.Second

// OllamaClient talks to a locally running Ollama server.
type OllamaClient struct {
	host       string
	httpClient *http.Client
}

func NewOllamaClient(host string) *OllamaClient {
	if host == "" {
		host = defaultOllamaHost
	}
	return &OllamaClient{
		host:       strings.TrimSuffix(host, "/"),
		httpClient: &http.Client{},
	}
}

type ollamaChatRequest struct {
	Model    string           `json:"model"`
	Messages []domain.Message `json:"messages"`
	Stream   bool             `json:"stream"`
	Options  ollamaOptions    `json:"options"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error,omitempty"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Chat sends the conversation to the first available candidate model,
// falling through the candidate list sequentially on "model not found".
func (c *OllamaClient) Chat(ctx context.Context, system string, messages []domain.Message) (string, error) {
	all := make([]domain.Message, 0, len(messages)+1)
	all = append(all, domain.Message{Role: "system", Content: system})
	all = append(all, messages...)

	var lastErr error
	for _, model := range candidateModels {
		reply, err := c.chatWithModel(ctx, model, all)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if isModelNotFound(err) {
			continue
		}
		return "", err
	}

	return "", fmt.Errorf("no available ollama models: %w", lastErr)
}

func (c *OllamaClient) chatWithModel(ctx context.Context, model string, messages []domain.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, perModelTimeout)
	defer cancel()

	body, err := json.Marshal(ollamaChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  ollamaOptions{Temperature: 0.7, NumPredict: 200},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var result ollamaChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("unmarshal chat response: %w", err)
	}

	if result.Error != "" {
		return "", fmt.Errorf("ollama error for model %s: %s", model, result.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(respBody))
	}

	content := strings.TrimSpace(result.Message.Content)
	if content == "" {
		return "I apologize, but I had trouble generating a response. Could you try again?", nil
	}
	return content, nil
}

// ListModels returns the locally available model names. Used as the
// reachability probe at startup.
func (c *OllamaClient) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("create tags request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tags request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tags endpoint returned status %d", resp.StatusCode)
	}

	var result ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}

	names := make([]string, 0, len(result.Models))
	for _, m := range result.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func isModelNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not found")
}
