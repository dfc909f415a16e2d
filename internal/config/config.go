package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Generative model provider (OpenAI-compatible chat completions API).
	LLMBaseURL   string
	LLMAPIKey    string
	LLMModel     string // capable model, used for full answers
	FastLLMModel string // cheap model, used for rewriting and fast-intent answers

	// Embedding provider (OpenAI-compatible embeddings API).
	EmbeddingBaseURL string
	EmbeddingModel   string

	// Reranker service.
	RerankerURL    string
	RerankerModel  string
	RerankerAPIKey string

	// Vector index.
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	// Retrieval pipeline tuning.
	FetchK              int
	FinalK              int
	MaxExchanges        int
	ComplexityThreshold int

	// External call timeouts.
	LLMTimeout    time.Duration
	RerankTimeout time.Duration

	// Ingestion bookkeeping database and default corpus location.
	DBPath   string
	DocsPath string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it is loaded
// automatically; variables already set in the environment take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	// Walk up from the working directory looking for a .env next to go.mod.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:       getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMAPIKey:        getEnv("LLM_API_KEY", "dummy-key"),
		LLMModel:         getEnv("LLM_MODEL", ""),
		FastLLMModel:     getEnv("FAST_LLM_MODEL", ""),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-004"),
		RerankerURL:      getEnv("RERANKER_URL", ""),
		RerankerModel:    getEnv("RERANKER_MODEL", "jina-colbert-v2"),
		RerankerAPIKey:   getEnv("RERANKER_API_KEY", ""),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "documents"),
		DBPath:           getEnv("DB_PATH", "./data/docuchat.db"),
		DocsPath:         getEnv("DOCS_PATH", ""),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if cfg.LLMModel == "" {
		return nil, fmt.Errorf("LLM_MODEL is required")
	}
	if cfg.FastLLMModel == "" {
		return nil, fmt.Errorf("FAST_LLM_MODEL is required")
	}
	if cfg.RerankerURL == "" {
		return nil, fmt.Errorf("RERANKER_URL is required")
	}

	// Vector size must match the embedding model's output dimension. If it changes,
	// the Qdrant collection has to be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.FetchK, err = getEnvInt("RAG_FETCH_K", 20); err != nil {
		return nil, err
	}
	if cfg.FinalK, err = getEnvInt("RAG_FINAL_K", 5); err != nil {
		return nil, err
	}
	if cfg.MaxExchanges, err = getEnvInt("MAX_HISTORY_EXCHANGES", 10); err != nil {
		return nil, err
	}
	if cfg.ComplexityThreshold, err = getEnvInt("COMPLEXITY_THRESHOLD", 150); err != nil {
		return nil, err
	}
	if cfg.FinalK > cfg.FetchK {
		return nil, fmt.Errorf("RAG_FINAL_K (%d) must not exceed RAG_FETCH_K (%d)", cfg.FinalK, cfg.FetchK)
	}

	llmTimeoutSecs, err := getEnvInt("LLM_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	rerankTimeoutSecs, err := getEnvInt("RERANK_TIMEOUT_SECONDS", 15)
	if err != nil {
		return nil, err
	}
	cfg.LLMTimeout = time.Duration(llmTimeoutSecs) * time.Second
	cfg.RerankTimeout = time.Duration(rerankTimeoutSecs) * time.Second

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	// Create the data directory up front so SQLite can open its file.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return parsed, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error (got %q)", value)
	}
}
