package rag

import (
	"context"
	"fmt"
	"strings"

	"docuchat/internal/contextutil"
	"docuchat/internal/llm"
)

// rewriteTemplate instructs the model to produce a search-optimized query.
// It must never answer the question or invent details.
const rewriteTemplate = `You are an expert at rewriting user questions to make them more compatible with a RAG search engine.

Rewrite the user query into a clearer, expanded search query that:
- Extracts core meaning
- Adds missing keywords
- Uses synonyms
- Removes ambiguity
- Does NOT answer the question
- Does NOT add fictional details at all
- Does not add unnecessary questions

Original Question: "%s"

Rewritten Search Query:`

// rewriteTemperature keeps rewrites deterministic.
const rewriteTemperature = 0.1

// QueryRewriter turns a raw user utterance into a search-optimized query.
// It always uses the fast model regardless of the turn's model selection;
// rewriting is a cost-control step, not an answer.
type QueryRewriter struct {
	llmClient GenerativeClient
	model     string
}

// NewQueryRewriter creates a QueryRewriter bound to the fast model.
func NewQueryRewriter(llmClient GenerativeClient, fastModel string) *QueryRewriter {
	return &QueryRewriter{
		llmClient: llmClient,
		model:     fastModel,
	}
}

// Rewrite produces the search query for a raw utterance. A provider failure
// propagates: retrieval quality silently degrading to the raw query is worse
// than a failed turn.
func (r *QueryRewriter) Rewrite(ctx context.Context, rawQuery string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	prompt := fmt.Sprintf(rewriteTemplate, rawQuery)
	messages := []llm.Message{{Role: "user", Content: prompt}}

	rewritten, err := r.llmClient.ChatWithMessages(ctx, messages, llm.ChatParams{
		Model:       r.model,
		Temperature: rewriteTemperature,
	})
	if err != nil {
		logger.ErrorContext(ctx, "query rewrite failed", "error", err)
		return "", fmt.Errorf("failed to rewrite query: %w", err)
	}

	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return "", fmt.Errorf("rewrite model returned an empty query")
	}

	logger.InfoContext(ctx, "query rewritten",
		"raw_length", len(rawQuery),
		"rewritten_length", len(rewritten),
	)
	logger.DebugContext(ctx, "rewritten query", "query", rewritten)
	return rewritten, nil
}
