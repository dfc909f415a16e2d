// Package indexer turns source documents into embedded, indexed chunks.
// It is the ingestion counterpart of the retrieval pipeline: everything it
// writes into the vector index, the retriever later reads back.
package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"docuchat/internal/contextutil"
	"docuchat/internal/storage"
	"docuchat/internal/vectorstore"
)

// embedBatchSize bounds how many chunk texts go to the embedding provider in
// one request.
const embedBatchSize = 16

// Embedder is the slice of the embeddings client the pipeline needs.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Pipeline ingests documents: chunk, record, embed, upsert.
type Pipeline struct {
	docRepo     storage.DocumentStore
	chunkRepo   storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	collection  string
	chunker     *MarkdownChunker
	splitter    RecursiveSplitter
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		docRepo:     docRepo,
		chunkRepo:   chunkRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunker:     NewMarkdownChunker(),
		splitter:    NewRecursiveSplitter(),
	}
}

// Result summarizes one ingestion run.
type Result struct {
	Indexed int // documents (re)indexed
	Skipped int // documents unchanged since last run
	Failed  int // documents that errored
	Chunks  int // chunks uploaded
}

// IngestPaths ingests the given files. A failing file is logged and counted
// but does not stop the run; the first error is returned alongside the result.
func (p *Pipeline) IngestPaths(ctx context.Context, paths []string) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var result Result
	var firstErr error
	for _, path := range paths {
		chunks, err := p.ingestFile(ctx, path)
		if err != nil {
			logger.ErrorContext(ctx, "failed to ingest document", "path", path, "error", err)
			result.Failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("ingest %s: %w", path, err)
			}
			continue
		}
		if chunks < 0 {
			result.Skipped++
			continue
		}
		result.Indexed++
		result.Chunks += chunks
	}

	logger.InfoContext(ctx, "ingestion run completed",
		"indexed", result.Indexed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"chunks", result.Chunks,
	)
	return result, firstErr
}

// IngestDir ingests every supported file under root.
func (p *Pipeline) IngestDir(ctx context.Context, root string) (Result, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown", ".txt", ".json", ".csv":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return p.IngestPaths(ctx, paths)
}

// ingestFile ingests one file. Returns -1 when the file is unchanged since
// the last run and was skipped.
func (p *Pipeline) ingestFile(ctx context.Context, path string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])

	docID := uuid.NewString()
	existing, err := p.docRepo.GetByPath(ctx, path)
	if err == nil {
		if existing.Hash == hash {
			logger.DebugContext(ctx, "document unchanged, skipping", "path", path)
			return -1, nil
		}
		docID = existing.ID
	} else if !errors.Is(err, storage.ErrNotFound) {
		return 0, err
	}

	docType, chunks, err := p.chunkFile(path, content)
	if err != nil {
		return 0, err
	}

	// Drop stale state from the previous version before uploading the new
	// chunks, so the index never holds both generations.
	staleIDs, err := p.chunkRepo.ListIDsByDocument(ctx, docID)
	if err != nil {
		return 0, err
	}
	if len(staleIDs) > 0 {
		if err := p.vectorStore.Delete(ctx, p.collection, staleIDs); err != nil {
			return 0, err
		}
		if err := p.chunkRepo.DeleteByDocument(ctx, docID); err != nil {
			return 0, err
		}
	}

	records := make([]*storage.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = &storage.ChunkRecord{
			ID:           uuid.NewString(),
			DocumentID:   docID,
			ChunkIndex:   i,
			SectionTitle: chunk.SectionTitle,
			ChunkKind:    chunk.Kind,
			PageNumber:   chunk.PageNumber,
			Text:         chunk.Text,
		}
		if err := p.chunkRepo.Insert(ctx, records[i]); err != nil {
			return 0, err
		}
	}

	if err := p.uploadChunks(ctx, path, docType, records); err != nil {
		return 0, err
	}

	if err := p.docRepo.Upsert(ctx, &storage.Document{
		ID:      docID,
		Path:    path,
		DocType: docType,
		Hash:    hash,
	}); err != nil {
		return 0, err
	}

	logger.InfoContext(ctx, "document ingested", "path", path, "doc_type", docType, "chunks", len(records))
	return len(records), nil
}

// chunkFile picks the loader for the file type.
func (p *Pipeline) chunkFile(path string, content []byte) (string, []Chunk, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return DocTypeMarkdown, p.chunker.ChunkMarkdown(content), nil
	case ".txt":
		return DocTypeText, loadText(content, p.splitter), nil
	case ".json":
		chunks, err := loadJSON(content)
		if err != nil {
			return "", nil, err
		}
		return DocTypeJSON, chunks, nil
	case ".csv":
		return DocTypeCSV, loadCSV(content), nil
	default:
		return "", nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
}

// uploadChunks embeds the chunk texts in batches and upserts the points with
// the payload the retriever reads back.
func (p *Pipeline) uploadChunks(ctx context.Context, source, docType string, records []*storage.ChunkRecord) error {
	for start := 0; start < len(records); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		texts := make([]string, len(batch))
		for i, rec := range batch {
			texts[i] = rec.Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("failed to embed chunks: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("expected %d vectors, got %d", len(batch), len(vectors))
		}

		points := make([]vectorstore.Point, len(batch))
		for i, rec := range batch {
			points[i] = vectorstore.Point{
				ID:  rec.ID,
				Vec: vectors[i],
				Meta: map[string]any{
					"text":          rec.Text,
					"source":        source,
					"chunk_index":   rec.ChunkIndex,
					"doc_type":      docType,
					"section_title": rec.SectionTitle,
					"chunk_kind":    rec.ChunkKind,
					"page_number":   rec.PageNumber,
				},
			}
		}
		if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
			return fmt.Errorf("failed to upsert chunks: %w", err)
		}
	}
	return nil
}
