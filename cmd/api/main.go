package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"docuchat/internal/config"
	"docuchat/internal/conversation"
	"docuchat/internal/http"
	"docuchat/internal/llm"
	"docuchat/internal/rag"
	"docuchat/internal/rerank"
	"docuchat/internal/storage"
	"docuchat/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the ingestion bookkeeping database. The API serves chats even
	// if no document has been ingested yet, but a broken database is a
	// deployment error worth failing on.
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
	slog.Info("Database initialized", "path", cfg.DBPath)

	ctx := context.Background()

	// Initialize Qdrant vector store
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize, cfg.LLMTimeout)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// External service clients, constructed once and injected.
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	rerankClient := rerank.NewClient(cfg.RerankerURL, cfg.RerankerModel, cfg.RerankerAPIKey, cfg.RerankTimeout)

	// Answer pipeline wiring.
	store := conversation.NewStore(cfg.MaxExchanges)
	rewriter := rag.NewQueryRewriter(llmClient, cfg.FastLLMModel)
	retriever := rag.NewRetriever(embedder, vectorStore, rerankClient, cfg.QdrantCollection, cfg.FetchK, cfg.FinalK)
	composer := rag.PromptComposer{ComplexityThreshold: cfg.ComplexityThreshold}
	selector := rag.ModelSelector{FastModel: cfg.FastLLMModel, CapableModel: cfg.LLMModel}
	pipeline := rag.NewPipeline(rewriter, retriever, composer, selector, llmClient, store)
	slog.Info("Answer pipeline initialized",
		"fetch_k", cfg.FetchK,
		"final_k", cfg.FinalK,
		"max_exchanges", cfg.MaxExchanges,
	)

	// Create router with dependencies
	deps := &http.Deps{
		Pipeline:   pipeline,
		Store:      store,
		ToolClient: llmClient,
		ToolModel:  cfg.LLMModel,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel, "fast_model", cfg.FastLLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
