package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pdfanalyzer/analyzer"
	"pdfanalyzer/document_type"
	"pdfanalyzer/llm_client"
)

// AnalyzerService is the slice of the analyzer the HTTP surface needs.
type AnalyzerService interface {
	Analyze(ctx context.Context, path string, docType document_type.Type) *analyzer.AnalysisResult
	Ask(ctx context.Context, question string) *llm_client.AnswerResult
	Summary(ctx context.Context) *llm_client.AnswerResult
	ChunkDocument() ([]string, error)
	IsLoaded() bool
	DocumentType() document_type.Type
}

type DocumentHandler struct {
	analyzer AnalyzerService
	logger   *slog.Logger
}

func NewDocumentHandler(a AnalyzerService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		analyzer: a,
		logger:   logger,
	}
}

func (h *DocumentHandler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Path         string `json:"path"`
		DocumentType string `json:"document_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if requestBody.Path == "" {
		http.Error(w, "path is required", http.StatusBadRequest)
		return
	}

	result := h.analyzer.Analyze(r.Context(), requestBody.Path, document_type.ParseType(requestBody.DocumentType))
	writeJSON(w, result)
}

func (h *DocumentHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if requestBody.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	result := h.analyzer.Ask(r.Context(), requestBody.Question)
	writeJSON(w, result)
}

func (h *DocumentHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	result := h.analyzer.Summary(r.Context())
	writeJSON(w, result)
}

func (h *DocumentHandler) GetChunks(w http.ResponseWriter, r *http.Request) {
	chunks, err := h.analyzer.ChunkDocument()
	if err != nil {
		if errors.Is(err, analyzer.ErrNoDocument) {
			writeJSON(w, map[string]interface{}{
				"success": false,
				"error":   "No document loaded. Please analyze a document first.",
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":     true,
		"chunk_count": len(chunks),
		"chunks":      chunks,
	})
}

func (h *DocumentHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"loaded":        h.analyzer.IsLoaded(),
		"document_type": h.analyzer.DocumentType(),
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
