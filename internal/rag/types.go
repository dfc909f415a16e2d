package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_clients.go -package=mocks docuchat/internal/rag GenerativeClient,Embedder,Reranker,Retriever,Pipeline

import (
	"context"

	"docuchat/internal/llm"
	"docuchat/internal/rerank"
)

// GenerativeClient is the interface the pipeline needs from the LLM provider.
// Defined from the consumer's perspective; *llm.Client satisfies it.
type GenerativeClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// Embedder converts texts to fixed-dimension vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Reranker scores (query, document) pairs and returns the top-n documents by
// relevance, identified by their index in the submitted slice.
type Reranker interface {
	Rerank(ctx context.Context, query string, documents []string, topN int) ([]rerank.Result, error)
}

// Retriever drives the fetch→rerank→truncate retrieval pipeline.
type Retriever interface {
	// Retrieve returns at most finalK candidates for the search query, in
	// relevance order when reranking succeeds and in similarity order when
	// the reranker is unavailable.
	Retrieve(ctx context.Context, query string) ([]Candidate, error)
}

// Pipeline coordinates one chat turn end to end.
type Pipeline interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResult, error)
}

// Candidate is a retrieved document chunk plus its scores. It exists only
// within one pipeline invocation.
type Candidate struct {
	ChunkID      string
	Text         string
	Source       string
	ChunkIndex   int
	DocType      string
	PageNumber   int
	SectionTitle string
	ChunkKind    string

	// Similarity is the vector-index score from the fetch phase.
	Similarity float32
	// Relevance is the cross-encoder score; only meaningful when Reranked.
	Relevance float64
	Reranked  bool
}

// ChatRequest is one inbound chat turn.
type ChatRequest struct {
	Message   string
	SessionID string // empty means a new session is assigned
}

// ChatResult is the outcome of a successful turn.
type ChatResult struct {
	RewrittenQuery string
	Answer         string
	Model          string
	SessionID      string
}
