package rag

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"docuchat/internal/contextutil"
	"docuchat/internal/conversation"
	"docuchat/internal/llm"
)

const (
	// answerTemperature keeps answers deterministic across retries.
	answerTemperature = 0.1

	// recentExchangesForPrompt is how many past exchanges are rendered into
	// the prompt's history slot.
	recentExchangesForPrompt = 5
)

// answerPipeline coordinates one chat turn: validate, optionally rewrite,
// retrieve, compose, generate, persist. Steps are strictly ordered because
// each depends on the previous step's output; concurrency comes from serving
// many turns at once, not from fan-out within a turn.
type answerPipeline struct {
	rewriter  *QueryRewriter
	retriever Retriever
	composer  PromptComposer
	selector  ModelSelector
	llmClient GenerativeClient
	store     *conversation.Store
}

// NewPipeline creates the answer pipeline. All collaborators are constructed
// once at startup and injected; the pipeline holds no lazily-built state.
func NewPipeline(
	rewriter *QueryRewriter,
	retriever Retriever,
	composer PromptComposer,
	selector ModelSelector,
	llmClient GenerativeClient,
	store *conversation.Store,
) Pipeline {
	return &answerPipeline{
		rewriter:  rewriter,
		retriever: retriever,
		composer:  composer,
		selector:  selector,
		llmClient: llmClient,
		store:     store,
	}
}

// Chat runs one turn. History is mutated only after a successful generation,
// so a failed turn never pollutes the session.
func (p *answerPipeline) Chat(ctx context.Context, req ChatRequest) (ChatResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Message) == "" {
		return ChatResult{}, &ValidationError{Field: "message", Message: "cannot be empty"}
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	history := p.store.GetOrCreate(sessionID)

	logger.InfoContext(ctx, "chat turn started",
		"session_id", sessionID,
		"message_length", len(req.Message),
	)

	// Rewriting is skipped under fast intent: the user asked for speed, so
	// the raw query goes to retrieval verbatim.
	searchQuery := req.Message
	if !WantsFastReply(req.Message) {
		rewritten, err := p.rewriter.Rewrite(ctx, req.Message)
		if err != nil {
			return ChatResult{}, &UpstreamError{Step: "rewrite", Err: err}
		}
		searchQuery = rewritten
	} else {
		logger.DebugContext(ctx, "fast intent detected, rewrite skipped")
	}

	candidates, err := p.retriever.Retrieve(ctx, searchQuery)
	if err != nil {
		return ChatResult{}, &UpstreamError{Step: "retrieve", Err: err}
	}

	historyText := history.RecentAsText(recentExchangesForPrompt)
	contextText := BuildContext(candidates)
	prompt := p.composer.Compose(req.Message, searchQuery, historyText, contextText)

	// Model selection runs on the raw query, not the rewritten one.
	model := p.selector.Select(req.Message)

	answer, err := p.llmClient.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: prompt}},
		llm.ChatParams{Model: model, Temperature: answerTemperature},
	)
	if err != nil {
		return ChatResult{}, &UpstreamError{Step: "generate", Err: err}
	}

	// The rewritten form, not the raw utterance, becomes the question side of
	// the stored exchange.
	history.AddExchange(searchQuery, answer)

	logger.InfoContext(ctx, "chat turn completed",
		"session_id", sessionID,
		"model", model,
		"candidates", len(candidates),
		"answer_length", len(answer),
	)

	return ChatResult{
		RewrittenQuery: searchQuery,
		Answer:         answer,
		Model:          model,
		SessionID:      sessionID,
	}, nil
}
