package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kaviyashree6/chatbot/internal/config"
)

// CompletionService talks to the OpenRouter-compatible chat completion
// endpoint in streaming mode.
type CompletionService struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewCompletionService(apiKey, model string) *CompletionService {
	return &CompletionService{
		apiKey:  apiKey,
		baseURL: config.OpenRouterBaseURL,
		model:   model,
		// No client timeout: the stream has no deadline and runs until
		// the connection drops.
		httpClient: &http.Client{},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// OpenStream sends the ordered message list and returns the raw event
// stream body. The caller owns the returned reader and must close it.
func (s *CompletionService) OpenStream(ctx context.Context, messages []ChatMessage, temperature *float64) (io.ReadCloser, error) {
	chatReq := chatRequest{
		Model:       s.model,
		Messages:    messages,
		Stream:      true,
		Temperature: temperature,
	}

	payload, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		switch resp.StatusCode {
		case http.StatusTooManyRequests:
			return nil, fmt.Errorf("rate limited by OpenRouter (429)")
		case http.StatusServiceUnavailable:
			return nil, fmt.Errorf("OpenRouter service unavailable (503)")
		default:
			return nil, fmt.Errorf("chat request failed (%d): %s", resp.StatusCode, bytes.TrimSpace(body))
		}
	}

	return resp.Body, nil
}
