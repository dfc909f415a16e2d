package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"docuchat/internal/conversation"
)

func historyRouter(store *conversation.Store) http.Handler {
	h := NewHistoryHandler(store)
	r := chi.NewRouter()
	r.Get("/api/chat/history/{sessionID}", h.GetHistory)
	r.Delete("/api/chat/history/{sessionID}", h.DeleteSession)
	return r
}

func TestGetHistory(t *testing.T) {
	store := conversation.NewStore(10)
	store.GetOrCreate("s1").AddExchange("question", "answer")

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/s1", nil)
	w := httptest.NewRecorder()
	historyRouter(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success || resp.SessionID != "s1" || resp.Count != 2 {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.History) != 2 || resp.History[0].Content != "question" {
		t.Errorf("history = %+v", resp.History)
	}
}

func TestGetHistoryUnknownSession(t *testing.T) {
	store := conversation.NewStore(10)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/history/missing", nil)
	w := httptest.NewRecorder()
	historyRouter(store).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}
	if resp.History == nil {
		t.Error("history should encode as an empty array, not null")
	}
}

func TestDeleteSession(t *testing.T) {
	store := conversation.NewStore(10)
	store.GetOrCreate("s1").AddExchange("q", "a")

	req := httptest.NewRequest(http.MethodDelete, "/api/chat/history/s1", nil)
	w := httptest.NewRecorder()
	historyRouter(store).ServeHTTP(w, req)

	var resp DeleteResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !resp.Success || !resp.Deleted {
		t.Errorf("response = %+v", resp)
	}
	if len(store.Messages("s1")) != 0 {
		t.Error("session still present after delete")
	}

	// Deleting again reports deleted=false.
	w = httptest.NewRecorder()
	historyRouter(store).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/chat/history/s1", nil))
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Deleted {
		t.Error("second delete should report deleted=false")
	}
}
