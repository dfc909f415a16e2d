package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func embeddingsServer(t *testing.T, vectors [][]float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		data := make([]map[string]any, len(vectors))
		for i, v := range vectors {
			data[i] = map[string]any{"embedding": v}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
}

func TestEmbedTexts(t *testing.T) {
	server := embeddingsServer(t, [][]float64{
		{0.1, 0.2, 0.3},
		{0.4, 0.5, 0.6},
	})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "embed-model", 3, 5*time.Second)
	got, err := client.EmbedTexts(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(got))
	}
	if got[0][1] != float32(0.2) {
		t.Errorf("got[0] = %v", got[0])
	}
}

func TestEmbedTextsEmptyInput(t *testing.T) {
	client := NewEmbeddingsClient("http://unused", "k", "m", 3, time.Second)
	if _, err := client.EmbedTexts(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestEmbedTextsCountMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2, 0.3}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "m", 3, time.Second)
	if _, err := client.EmbedTexts(context.Background(), []string{"one", "two"}); err == nil {
		t.Fatal("expected error when embedding count mismatches input count")
	}
}

func TestEmbedTextsSizeMismatch(t *testing.T) {
	server := embeddingsServer(t, [][]float64{{0.1, 0.2}})
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "m", 3, time.Second)
	if _, err := client.EmbedTexts(context.Background(), []string{"one"}); err == nil {
		t.Fatal("expected error on wrong vector dimension")
	}
}

func TestEmbedTextsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "k", "m", 3, time.Second)
	if _, err := client.EmbedTexts(context.Background(), []string{"one"}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
