package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"docuchat/internal/config"
	"docuchat/internal/contextutil"
	"docuchat/internal/indexer"
	"docuchat/internal/llm"
	"docuchat/internal/storage"
	"docuchat/internal/vectorstore"
)

// ingest indexes documents into the vector store. With file arguments it
// ingests those files; without arguments it walks DOCS_PATH (or the -dir flag).
func main() {
	dirFlag := flag.String("dir", "", "directory to ingest (overrides DOCS_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := contextutil.WithLogger(context.Background(), logger)

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize, cfg.LLMTimeout)

	pipeline := indexer.NewPipeline(
		storage.NewDocumentRepo(db),
		storage.NewChunkRepo(db),
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	var result indexer.Result
	if args := flag.Args(); len(args) > 0 {
		result, err = pipeline.IngestPaths(ctx, args)
	} else {
		root := *dirFlag
		if root == "" {
			root = cfg.DocsPath
		}
		if root == "" {
			log.Fatal("No input: pass file paths, set -dir, or set DOCS_PATH")
		}
		result, err = pipeline.IngestDir(ctx, root)
	}

	slog.Info("Ingestion finished",
		"indexed", result.Indexed,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"chunks", result.Chunks,
	)
	if err != nil {
		log.Fatalf("Ingestion completed with errors: %v", err)
	}
}
