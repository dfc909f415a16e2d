// Package rerank provides a client for a cross-encoder reranking service.
// The service scores (query, document) pairs and returns the top-n documents
// by relevance, identified by their index in the request order.
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Result is a single reranked document: the index into the submitted
// documents slice plus the cross-encoder relevance score.
type Result struct {
	Index          int     `json:"index"`
	RelevanceScore float64 `json:"relevance_score"`
}

// Client talks to a Jina-style rerank HTTP endpoint.
type Client struct {
	URL    string
	Model  string
	APIKey string
	client *http.Client
}

// NewClient creates a new reranker client. A timed-out request is
// indistinguishable from any other failure; callers fall back accordingly.
func NewClient(url, model, apiKey string, timeout time.Duration) *Client {
	return &Client{
		URL:    url,
		Model:  model,
		APIKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

type rerankRequest struct {
	Model     string   `json:"model"`
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopN      int      `json:"top_n"`
}

type rerankResponse struct {
	Results []Result `json:"results"`
}

// Rerank scores the documents against the query and returns the top-n results
// in relevance order. Empty input yields an empty result without a network call.
func (c *Client) Rerank(ctx context.Context, query string, documents []string, topN int) ([]Result, error) {
	if len(documents) == 0 {
		return []Result{}, nil
	}

	payload := rerankRequest{
		Model:     c.Model,
		Query:     query,
		Documents: documents,
		TopN:      topN,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var rerankResp rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&rerankResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Validate indices so a misbehaving service cannot cause an out-of-range
	// access in the caller.
	for _, r := range rerankResp.Results {
		if r.Index < 0 || r.Index >= len(documents) {
			return nil, fmt.Errorf("result index %d out of range for %d documents", r.Index, len(documents))
		}
	}

	return rerankResp.Results, nil
}
