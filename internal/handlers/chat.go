package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"docuchat/internal/contextutil"
	"docuchat/internal/rag"
)

// ChatHandler handles HTTP requests for chat turns.
type ChatHandler struct {
	pipeline rag.Pipeline
	validate *validator.Validate
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(pipeline rag.Pipeline) *ChatHandler {
	return &ChatHandler{
		pipeline: pipeline,
		validate: validator.New(),
	}
}

// ChatRequest represents the HTTP request payload for a chat turn.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionID string `json:"sessionId"`
}

// ChatResponse represents the HTTP response payload for a successful turn.
type ChatResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	NewQuery  string `json:"newQuery"`
	Message   string `json:"message"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ServeHTTP handles POST /api/chat.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		logger.WarnContext(ctx, "chat request validation failed", "error", err)
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}

	result, err := h.pipeline.Chat(ctx, rag.ChatRequest{
		Message:   req.Message,
		SessionID: req.SessionID,
	})
	if err != nil {
		writePipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ChatResponse{
		Success:   true,
		SessionID: result.SessionID,
		NewQuery:  result.RewrittenQuery,
		Message:   result.Answer,
		Model:     result.Model,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// writePipelineError maps pipeline errors to HTTP status codes. Upstream
// detail is logged but only a generic message reaches the client.
func writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "chat turn failed", "error", err)

	var validationErr *rag.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Error())
		return
	}

	var upstreamErr *rag.UpstreamError
	if errors.As(err, &upstreamErr) {
		writeError(w, http.StatusBadGateway, "Upstream service error during "+upstreamErr.Step)
		return
	}

	writeError(w, http.StatusInternalServerError, "Failed to process chat request")
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Success: false, Error: message})
}
