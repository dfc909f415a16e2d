package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"docuchat/internal/contextutil"
	"docuchat/internal/llm"
	"docuchat/internal/tools"
)

// toolTemperature is slightly higher than the answer pipeline's: generation
// tools benefit from some variety.
const toolTemperature = 0.3

// ToolClient is the slice of the LLM client the tool endpoints need.
type ToolClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
	ChatWithImage(ctx context.Context, prompt, imageBase64, mimeType string, params llm.ChatParams) (string, error)
}

// ToolsHandler serves the prompt-template generation endpoints. Each endpoint
// formats an instruction, runs the capable model once, and returns the result.
type ToolsHandler struct {
	llmClient ToolClient
	model     string
	validate  *validator.Validate
}

// NewToolsHandler creates a new ToolsHandler bound to the capable model.
func NewToolsHandler(llmClient ToolClient, model string) *ToolsHandler {
	return &ToolsHandler{
		llmClient: llmClient,
		model:     model,
		validate:  validator.New(),
	}
}

// EmailRequest represents the payload for the email endpoint.
type EmailRequest struct {
	SenderRole        string `json:"sender_role" validate:"required"`
	ReceiverRole      string `json:"receiver_role" validate:"required"`
	Purpose           string `json:"email_purpose" validate:"required"`
	Tone              string `json:"email_tone"`
	AdditionalContext string `json:"additional_context"`
}

// EmailResponse represents the response from the email endpoint.
type EmailResponse struct {
	Success   bool        `json:"success"`
	Email     tools.Email `json:"email"`
	FullEmail string      `json:"full_email"`
}

// GenerateEmail handles POST /api/tools/email.
func (h *ToolsHandler) GenerateEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req EmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		logger.WarnContext(ctx, "email request validation failed", "error", err)
		writeError(w, http.StatusBadRequest, "sender_role, receiver_role and email_purpose are required")
		return
	}

	prompt := tools.EmailPrompt(tools.EmailParams{
		SenderRole:        req.SenderRole,
		ReceiverRole:      req.ReceiverRole,
		Purpose:           req.Purpose,
		Tone:              req.Tone,
		AdditionalContext: req.AdditionalContext,
	})

	content, err := h.llmClient.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: prompt}},
		llm.ChatParams{Model: h.model, Temperature: toolTemperature},
	)
	if err != nil {
		logger.ErrorContext(ctx, "email generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "Email generation failed")
		return
	}

	email := tools.ParseEmail(content)
	writeJSON(w, http.StatusOK, EmailResponse{
		Success:   true,
		Email:     email,
		FullEmail: email.Render(),
	})
}

// CaptionRequest represents the payload for the caption endpoint. The image
// arrives base64-encoded; upload handling lives outside this service.
type CaptionRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
	MimeType    string `json:"mime_type" validate:"required"`
	Style       string `json:"caption_style"`
}

// CaptionResponse represents the response from the caption endpoint.
type CaptionResponse struct {
	Success bool   `json:"success"`
	Caption string `json:"caption"`
}

// GenerateCaption handles POST /api/tools/caption.
func (h *ToolsHandler) GenerateCaption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CaptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		logger.WarnContext(ctx, "caption request validation failed", "error", err)
		writeError(w, http.StatusBadRequest, "image_base64 and mime_type are required")
		return
	}

	caption, err := h.llmClient.ChatWithImage(ctx,
		tools.CaptionPrompt(req.Style),
		req.ImageBase64, req.MimeType,
		llm.ChatParams{Model: h.model, Temperature: toolTemperature},
	)
	if err != nil {
		logger.ErrorContext(ctx, "caption generation failed", "error", err)
		writeError(w, http.StatusBadGateway, "Caption generation failed")
		return
	}

	writeJSON(w, http.StatusOK, CaptionResponse{Success: true, Caption: caption})
}

// CSVRequest represents the payload for the CSV analysis endpoint.
type CSVRequest struct {
	CSVData  string `json:"csv_data" validate:"required"`
	Question string `json:"question" validate:"required"`
}

// CSVResponse represents the response from the CSV analysis endpoint.
type CSVResponse struct {
	Success     bool             `json:"success"`
	Analysis    string           `json:"analysis"`
	DataSummary tools.CSVSummary `json:"data_summary"`
}

// AnalyzeCSV handles POST /api/tools/csv.
func (h *ToolsHandler) AnalyzeCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req CSVRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		logger.WarnContext(ctx, "csv request validation failed", "error", err)
		writeError(w, http.StatusBadRequest, "csv_data and question are required")
		return
	}

	analysis, err := h.llmClient.ChatWithMessages(ctx,
		[]llm.Message{{Role: "user", Content: tools.CSVPrompt(tools.CSVParams{CSVData: req.CSVData, Question: req.Question})}},
		llm.ChatParams{Model: h.model, Temperature: toolTemperature},
	)
	if err != nil {
		logger.ErrorContext(ctx, "csv analysis failed", "error", err)
		writeError(w, http.StatusBadGateway, "CSV analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, CSVResponse{
		Success:     true,
		Analysis:    analysis,
		DataSummary: tools.SummarizeCSV(req.CSVData),
	})
}
