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

	"github.com/KOFI-GYIMAH/github-digest/internal/middleware"
	"github.com/KOFI-GYIMAH/github-digest/pkg/errors"
	"github.com/KOFI-GYIMAH/github-digest/pkg/logger"
)

// Completer sends one system + user prompt pair and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
}

type chatCompletionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message      message `json:"message"`
		FinishReason string  `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewClient(apiKey, baseURL, model string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   60 * time.Second,
			Transport: middleware.LoggingTransport(nil),
		},
		apiURL: strings.TrimSuffix(baseURL, "/") + "/v1/chat/completions",
		apiKey: apiKey,
		model:  model,
	}
}

func (c *Client) Model() string {
	return c.model
}

// Complete issues a single, non-streaming completion request. The content of
// the first choice is returned exactly as the model produced it.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	payload, err := json.Marshal(chatCompletionRequest{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", apiError("Failed to encode completion request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", apiError("Failed to create completion request", "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apiError("Failed to reach the model API", c.apiURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apiError("Failed to read completion response", "", err)
	}

	var chatResp chatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", apiError("Model API returned an error", fmt.Sprintf("status %d: %s", resp.StatusCode, body), nil)
		}
		return "", apiError("Failed to parse completion response", "", err)
	}

	if chatResp.Error != nil {
		return "", apiError("Model API returned an error", fmt.Sprintf("status %d: %s", resp.StatusCode, chatResp.Error.Message), nil)
	}

	if resp.StatusCode != http.StatusOK {
		return "", apiError("Model API returned an error", fmt.Sprintf("status %d: %s", resp.StatusCode, body), nil)
	}

	if len(chatResp.Choices) == 0 {
		return "", apiError("Model API returned no choices", "", nil)
	}

	logger.Debug("completion done: model=%s prompt_tokens=%d completion_tokens=%d",
		chatResp.Model, chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens)

	return chatResp.Choices[0].Message.Content, nil
}

func apiError(title, detail string, cause error) error {
	return errors.New("LLM_API_ERROR", title, detail, cause, errors.LevelError)
}
