package rerank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRerankSuccess(t *testing.T) {
	var gotReq rerankRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(rerankResponse{
			Results: []Result{
				{Index: 2, RelevanceScore: 0.95},
				{Index: 0, RelevanceScore: 0.40},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-model", "test-key", 5*time.Second)
	results, err := client.Rerank(context.Background(), "the query", []string{"a", "b", "c"}, 2)
	if err != nil {
		t.Fatalf("Rerank() error = %v", err)
	}

	if gotReq.Model != "test-model" || gotReq.Query != "the query" || gotReq.TopN != 2 {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Documents) != 3 {
		t.Errorf("request documents = %v", gotReq.Documents)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Index != 2 || results[0].RelevanceScore != 0.95 {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestRerankEmptyDocuments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty documents")
	}))
	defer server.Close()

	client := NewClient(server.URL, "m", "k", time.Second)
	results, err := client.Rerank(context.Background(), "query", nil, 5)
	if err != nil {
		t.Fatalf("Rerank() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected empty results, got %+v", results)
	}
}

func TestRerankBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "m", "k", time.Second)
	if _, err := client.Rerank(context.Background(), "query", []string{"a"}, 1); err == nil {
		t.Fatal("Rerank() expected error on non-200 status")
	}
}

func TestRerankRejectsOutOfRangeIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(rerankResponse{
			Results: []Result{{Index: 7, RelevanceScore: 0.5}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "m", "k", time.Second)
	if _, err := client.Rerank(context.Background(), "query", []string{"a", "b"}, 1); err == nil {
		t.Fatal("Rerank() expected error for out-of-range index")
	}
}

func TestRerankInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "m", "k", time.Second)
	if _, err := client.Rerank(context.Background(), "query", []string{"a"}, 1); err == nil {
		t.Fatal("Rerank() expected error for malformed response")
	}
}
