package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docuchat/internal/conversation"
	"docuchat/internal/handlers"
	"docuchat/internal/rag"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Pipeline   rag.Pipeline
	Store      *conversation.Store
	ToolClient handlers.ToolClient
	ToolModel  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(LoggerMiddleware)

	chatHandler := handlers.NewChatHandler(deps.Pipeline)
	historyHandler := handlers.NewHistoryHandler(deps.Store)
	toolsHandler := handlers.NewToolsHandler(deps.ToolClient, deps.ToolModel)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)
		r.Get("/chat/history/{sessionID}", historyHandler.GetHistory)
		r.Delete("/chat/history/{sessionID}", historyHandler.DeleteSession)

		r.Route("/tools", func(r chi.Router) {
			r.Post("/email", toolsHandler.GenerateEmail)
			r.Post("/caption", toolsHandler.GenerateCaption)
			r.Post("/csv", toolsHandler.AnalyzeCSV)
		})
	})

	r.Get("/health", handlers.Health)

	return r
}
