package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"docuchat/internal/rag"
	"docuchat/internal/rag/mocks"
)

func TestChatHandlerServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name          string
		body          any
		mockSetup     func(*mocks.MockPipeline)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name: "successful turn",
			body: ChatRequest{Message: "how does retrieval work?", SessionID: "s1"},
			mockSetup: func(m *mocks.MockPipeline) {
				m.EXPECT().
					Chat(gomock.Any(), rag.ChatRequest{Message: "how does retrieval work?", SessionID: "s1"}).
					Return(rag.ChatResult{
						RewrittenQuery: "retrieval pipeline explanation",
						Answer:         "It fetches and reranks chunks.",
						Model:          "big-model",
						SessionID:      "s1",
					}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ChatResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if !resp.Success || resp.Message != "It fetches and reranks chunks." {
					t.Errorf("response = %+v", resp)
				}
				if resp.NewQuery != "retrieval pipeline explanation" {
					t.Errorf("NewQuery = %q", resp.NewQuery)
				}
				if resp.SessionID != "s1" || resp.Model != "big-model" {
					t.Errorf("response = %+v", resp)
				}
				if resp.Timestamp == "" {
					t.Error("missing timestamp")
				}
			},
		},
		{
			name:       "invalid JSON body",
			body:       "not json",
			mockSetup:  func(m *mocks.MockPipeline) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing message",
			body:       ChatRequest{SessionID: "s1"},
			mockSetup:  func(m *mocks.MockPipeline) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "validation error from pipeline",
			body: ChatRequest{Message: "   "},
			mockSetup: func(m *mocks.MockPipeline) {
				m.EXPECT().
					Chat(gomock.Any(), gomock.Any()).
					Return(rag.ChatResult{}, &rag.ValidationError{Field: "message", Message: "cannot be empty"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "upstream error",
			body: ChatRequest{Message: "hello"},
			mockSetup: func(m *mocks.MockPipeline) {
				m.EXPECT().
					Chat(gomock.Any(), gomock.Any()).
					Return(rag.ChatResult{}, &rag.UpstreamError{Step: "generate", Err: errors.New("provider down")})
			},
			wantStatus: http.StatusBadGateway,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp ErrorResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("invalid JSON: %v", err)
				}
				if resp.Error != "Upstream service error during generate" {
					t.Errorf("error message = %q", resp.Error)
				}
			},
		},
		{
			name: "unexpected error",
			body: ChatRequest{Message: "hello"},
			mockSetup: func(m *mocks.MockPipeline) {
				m.EXPECT().
					Chat(gomock.Any(), gomock.Any()).
					Return(rag.ChatResult{}, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPipeline := mocks.NewMockPipeline(ctrl)
			tt.mockSetup(mockPipeline)

			handler := NewChatHandler(mockPipeline)

			var bodyBytes []byte
			if s, ok := tt.body.(string); ok {
				bodyBytes = []byte(s)
			} else {
				bodyBytes, _ = json.Marshal(tt.body)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewBuffer(bodyBytes))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
