package rag

import (
	"context"
	"fmt"

	"docuchat/internal/contextutil"
	"docuchat/internal/vectorstore"
)

// retriever implements the Retriever interface: fetch a wide candidate set
// from the vector index, rerank it with a cross-encoder, keep the best few.
type retriever struct {
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	reranker    Reranker
	collection  string
	fetchK      int
	finalK      int
}

// NewRetriever creates the retrieval orchestrator. fetchK is the candidate
// count requested from the vector index, finalK the count retained after
// reranking.
func NewRetriever(
	embedder Embedder,
	store vectorstore.VectorStore,
	reranker Reranker,
	collection string,
	fetchK, finalK int,
) Retriever {
	return &retriever{
		embedder:    embedder,
		vectorStore: store,
		reranker:    reranker,
		collection:  collection,
		fetchK:      fetchK,
		finalK:      finalK,
	}
}

// Retrieve runs the fetch→rerank→truncate pipeline.
//
// The two degradation paths are deliberate and local: hybrid search falls back
// to pure vector search, and a reranker failure falls back to similarity-order
// truncation. Embedding or vector-index failures propagate; a turn cannot
// proceed without any candidates at all.
func (r *retriever) Retrieve(ctx context.Context, query string) ([]Candidate, error) {
	logger := contextutil.LoggerFromContext(ctx)

	embeddings, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}
	queryVector := embeddings[0]

	// Fetch phase: hybrid first, pure vector on failure. This fallback must
	// not raise; it is the one retry path in the pipeline.
	results, err := r.vectorStore.HybridSearch(ctx, r.collection, queryVector, query, r.fetchK)
	if err != nil {
		logger.WarnContext(ctx, "hybrid search failed, using vector only", "error", err)
		results, err = r.vectorStore.Search(ctx, r.collection, queryVector, r.fetchK)
		if err != nil {
			return nil, fmt.Errorf("failed to search vector store: %w", err)
		}
	}

	candidates := candidatesFromResults(results)
	logger.InfoContext(ctx, "fetch phase completed", "fetch_k", r.fetchK, "fetched", len(candidates))
	if len(candidates) == 0 {
		return []Candidate{}, nil
	}

	// Rerank phase. On any failure return the first finalK candidates in
	// fetch order; reranker unavailability must never abort a chat turn.
	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = c.Text
	}

	ranked, err := r.reranker.Rerank(ctx, query, documents, r.finalK)
	if err != nil {
		logger.WarnContext(ctx, "reranking failed, falling back to fetch order", "error", err)
		return truncate(candidates, r.finalK), nil
	}

	if len(ranked) > r.finalK {
		ranked = ranked[:r.finalK]
	}

	final := make([]Candidate, 0, len(ranked))
	for _, res := range ranked {
		c := candidates[res.Index]
		c.Relevance = res.RelevanceScore
		c.Reranked = true
		final = append(final, c)
	}

	logger.InfoContext(ctx, "rerank phase completed", "in", len(candidates), "out", len(final))
	return final, nil
}

func truncate(candidates []Candidate, k int) []Candidate {
	if len(candidates) > k {
		return candidates[:k]
	}
	return candidates
}

// candidatesFromResults maps vector-index search results onto Candidates,
// pulling chunk text and metadata out of the point payload.
func candidatesFromResults(results []vectorstore.SearchResult) []Candidate {
	candidates := make([]Candidate, 0, len(results))
	for _, res := range results {
		c := Candidate{
			ChunkID:    res.PointID,
			Similarity: res.Score,
		}
		c.Text, _ = res.Meta["text"].(string)
		c.Source, _ = res.Meta["source"].(string)
		c.DocType, _ = res.Meta["doc_type"].(string)
		c.SectionTitle, _ = res.Meta["section_title"].(string)
		c.ChunkKind, _ = res.Meta["chunk_kind"].(string)
		c.ChunkIndex = metaInt(res.Meta, "chunk_index")
		c.PageNumber = metaInt(res.Meta, "page_number")
		candidates = append(candidates, c)
	}
	return candidates
}

// metaInt reads an integer payload field, tolerating the numeric types the
// payload conversion may produce.
func metaInt(meta map[string]any, key string) int {
	switch v := meta[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
