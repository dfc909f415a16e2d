package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a client for an OpenAI-compatible chat completions API.
// The model is selectable per call, which is how the pipeline switches
// between the fast and the capable variants.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string // default model when a request does not override it
	client  *http.Client
}

// NewClient creates a new LLM client. The timeout bounds every request;
// a timed-out call surfaces as an ordinary request error.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// chatRequest represents the request payload for chat completions.
type chatRequest struct {
	Model       string  `json:"model"`
	Messages    []any   `json:"messages"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float32 `json:"temperature"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []chatChoice `json:"choices"`
}

// imageContent is an image part in a multimodal user message.
type imageContent struct {
	Type     string `json:"type"`
	ImageURL struct {
		URL string `json:"url"`
	} `json:"image_url"`
}

// textContent is a text part in a multimodal user message.
type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChatWithMessages sends a chat completion request with the given messages and parameters.
func (c *Client) ChatWithMessages(ctx context.Context, messages []Message, params ChatParams) (string, error) {
	payload := chatRequest{
		Model:       c.resolveModel(params.Model),
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	for _, m := range messages {
		payload.Messages = append(payload.Messages, m)
	}
	return c.complete(ctx, payload)
}

// ChatWithImage sends a single-turn multimodal request containing the prompt text
// and a base64-encoded image. Used by the caption tool.
func (c *Client) ChatWithImage(ctx context.Context, prompt, imageBase64, mimeType string, params ChatParams) (string, error) {
	img := imageContent{Type: "image_url"}
	img.ImageURL.URL = fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64)

	message := map[string]any{
		"role": "user",
		"content": []any{
			textContent{Type: "text", Text: prompt},
			img,
		},
	}

	payload := chatRequest{
		Model:       c.resolveModel(params.Model),
		Messages:    []any{message},
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	}
	return c.complete(ctx, payload)
}

func (c *Client) resolveModel(override string) string {
	if override != "" {
		return override
	}
	return c.Model
}

func (c *Client) complete(ctx context.Context, payload chatRequest) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}
