package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"docuchat/internal/contextutil"
	"docuchat/internal/conversation"
)

// HistoryHandler serves conversation history queries and session deletion.
type HistoryHandler struct {
	store *conversation.Store
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(store *conversation.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// HistoryResponse represents the response for a history query.
type HistoryResponse struct {
	Success   bool                   `json:"success"`
	SessionID string                 `json:"sessionId"`
	History   []conversation.Message `json:"history"`
	Count     int                    `json:"count"`
}

// DeleteResponse represents the response for a session deletion.
type DeleteResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

// GetHistory handles GET /api/chat/history/{sessionID}.
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	history := h.store.Messages(sessionID)
	writeJSON(w, http.StatusOK, HistoryResponse{
		Success:   true,
		SessionID: sessionID,
		History:   history,
		Count:     len(history),
	})
}

// DeleteSession handles DELETE /api/chat/history/{sessionID}.
func (h *HistoryHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	deleted := h.store.Delete(sessionID)
	logger.InfoContext(ctx, "session delete requested", "session_id", sessionID, "deleted", deleted)
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true, Deleted: deleted})
}
