package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"docuchat/internal/conversation"
	"docuchat/internal/llm"
	"docuchat/internal/rag"
	"docuchat/internal/rag/mocks"
)

type stubToolClient struct{}

func (stubToolClient) ChatWithMessages(context.Context, []llm.Message, llm.ChatParams) (string, error) {
	return "generated", nil
}

func (stubToolClient) ChatWithImage(context.Context, string, string, string, llm.ChatParams) (string, error) {
	return "caption", nil
}

func newTestRouter(t *testing.T, pipeline rag.Pipeline, store *conversation.Store) http.Handler {
	t.Helper()
	return NewRouter(&Deps{
		Pipeline:   pipeline,
		Store:      store,
		ToolClient: stubToolClient{},
		ToolModel:  "big-model",
	})
}

func TestRouterHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockPipeline(ctrl), conversation.NewStore(10))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("health response = %v", resp)
	}
}

func TestRouterChatRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pipeline := mocks.NewMockPipeline(ctrl)
	pipeline.EXPECT().
		Chat(gomock.Any(), gomock.Any()).
		Return(rag.ChatResult{Answer: "hi", SessionID: "s1", Model: "m"}, nil)

	router := newTestRouter(t, pipeline, conversation.NewStore(10))

	body, _ := json.Marshal(map[string]string{"message": "hello"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBuffer(body)))

	if w.Code != http.StatusOK {
		t.Errorf("POST /api/chat status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestRouterChatMethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockPipeline(ctrl), conversation.NewStore(10))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/chat status = %d, want 405", w.Code)
	}
}

func TestRouterHistoryRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := conversation.NewStore(10)
	store.GetOrCreate("s1").AddExchange("q", "a")
	router := newTestRouter(t, mocks.NewMockPipeline(ctrl), store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/history/s1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("GET history status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/chat/history/s1", nil))
	if w.Code != http.StatusOK {
		t.Errorf("DELETE history status = %d", w.Code)
	}
	if len(store.Messages("s1")) != 0 {
		t.Error("session not removed via DELETE route")
	}
}

func TestRouterToolRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := newTestRouter(t, mocks.NewMockPipeline(ctrl), conversation.NewStore(10))

	tests := []struct {
		path    string
		payload map[string]string
	}{
		{"/api/tools/email", map[string]string{
			"sender_role":   "manager",
			"receiver_role": "team",
			"email_purpose": "kickoff",
		}},
		{"/api/tools/caption", map[string]string{
			"image_base64": "QUJD",
			"mime_type":    "image/png",
		}},
		{"/api/tools/csv", map[string]string{
			"csv_data": "a,b\n1,2",
			"question": "sum of b?",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body, _ := json.Marshal(tt.payload)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, bytes.NewBuffer(body)))
			if w.Code != http.StatusOK {
				t.Errorf("POST %s status = %d, body = %s", tt.path, w.Code, w.Body.String())
			}
		})
	}
}
