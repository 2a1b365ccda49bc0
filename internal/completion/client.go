// Package completion talks to the external text-completion endpoint. It is
// the sole failure-prone boundary of the system and owns no state.
package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client sends a prompt to a completion endpoint and returns the first
// choice's message text. Implementations may call an LLM or return canned
// results (for tests).
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// TransportError reports a network failure or a non-success HTTP status from
// the completion endpoint.
type TransportError struct {
	Status  int // 0 when the request never got a response
	Wrapped error
}

func (e *TransportError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("completion request failed: %v", e.Wrapped)
	}
	return fmt.Sprintf("completion endpoint returned status %d", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Wrapped
}

// UpstreamFormatError reports that the endpoint's own response envelope was
// missing the expected choice/message fields.
type UpstreamFormatError struct {
	Reason string
}

func (e *UpstreamFormatError) Error() string {
	return fmt.Sprintf("malformed completion response: %s", e.Reason)
}

// TogetherClient calls an OpenAI-compatible chat-completions endpoint
// (Together AI, Ollama, LM Studio, vLLM, etc.).
type TogetherClient struct {
	url    string // e.g. "https://api.together.xyz"
	apiKey string
	model  string
	client *http.Client // reused across calls
}

// Compile-time check: *TogetherClient satisfies the Client interface.
var _ Client = (*TogetherClient)(nil)

// NewTogetherClient creates a client for the given endpoint and model.
func NewTogetherClient(url, apiKey, model string) *TogetherClient {
	return &TogetherClient{
		url:    url,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single chat-completion request and returns the raw text
// of the first choice. There is no retry; callers that need a deadline pass
// one through ctx.
func (c *TogetherClient) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &TransportError{Wrapped: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{Status: resp.StatusCode}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &UpstreamFormatError{Reason: "body is not valid JSON"}
	}

	if len(chatResp.Choices) == 0 {
		return "", &UpstreamFormatError{Reason: "no choices returned"}
	}

	content := chatResp.Choices[0].Message.Content
	if content == "" {
		return "", &UpstreamFormatError{Reason: "empty message content"}
	}

	return content, nil
}
