package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"pdfanalyzer/chunker"
	"pdfanalyzer/config"
	"pdfanalyzer/document_type"
	"pdfanalyzer/llm_client"
	"pdfanalyzer/timing"
)

const noDocumentMessage = "No document loaded. Please analyze a document first."

// ErrNoDocument is returned by operations that need a loaded document
// when the session is empty.
var ErrNoDocument = errors.New("no document loaded")

// Extractor is the document-extraction collaborator.
type Extractor interface {
	Extract(path string) (*document_type.Snapshot, error)
}

// session is the analyzer's mutable state. It is replaced wholesale on
// every successful extraction, never merged. loaded is true iff
// documentText is non-empty; structuredData stays empty until a
// structured extraction succeeds.
type session struct {
	documentText   string
	structuredData string
	docType        document_type.Type
	loaded         bool
}

// DocumentAnalyzer sequences extraction, availability checking,
// structured extraction and question answering over one document
// session. Operations are serialized behind a mutex since the session
// is mutated in place.
type DocumentAnalyzer struct {
	cfg    config.Config
	parser Extractor
	llm    llm_client.Service
	logger *slog.Logger

	mu      sync.Mutex
	session session
}

func New(cfg config.Config, parser Extractor, llm llm_client.Service, logger *slog.Logger) *DocumentAnalyzer {
	return &DocumentAnalyzer{
		cfg:    cfg,
		parser: parser,
		llm:    llm,
		logger: logger,
		session: session{
			docType: document_type.Generic,
		},
	}
}

// AnalysisResult is the envelope for one Analyze call. Timing always
// carries the four pipeline stages plus the sub-stage timings of the
// extraction and LLM calls under pdf_/llm_ prefixes; stages skipped by
// an early failure are 0.
type AnalysisResult struct {
	Success        bool                         `json:"success"`
	Error          string                       `json:"error,omitempty"`
	AnalysisID     string                       `json:"analysis_id"`
	DocumentType   document_type.Type           `json:"document_type"`
	PDFData        *document_type.Snapshot      `json:"pdf_data,omitempty"`
	LLMData        *llm_client.ExtractionResult `json:"llm_data,omitempty"`
	StructuredData string                       `json:"structured_data,omitempty"`
	Timing         timing.Stages                `json:"timing"`
}

// Analyze extracts the document at path and loads it as the current
// session. PDF failure and model unavailability are hard failures; a
// failed structured extraction is soft — the document stays loaded and
// question answering falls back to the raw text.
func (a *DocumentAnalyzer) Analyze(ctx context.Context, path string, docType document_type.Type) *AnalysisResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	analysisID := uuid.New().String()
	rec := timing.NewRecorder(
		"total_analysis_time",
		"pdf_extraction_time",
		"model_check_time",
		"llm_extraction_time",
	)
	stopTotal := rec.Track("total_analysis_time")

	a.logger.Info("Starting document analysis",
		slog.String("analysis_id", analysisID),
		slog.String("path", path),
		slog.String("document_type", docType.String()))

	stopExtraction := rec.Track("pdf_extraction_time")
	snapshot, err := a.parser.Extract(path)
	stopExtraction()
	if err != nil {
		stopTotal()
		a.logger.Error("Error analyzing document",
			slog.String("analysis_id", analysisID),
			slog.String("error", err.Error()))
		return &AnalysisResult{
			Success:      false,
			Error:        err.Error(),
			AnalysisID:   analysisID,
			DocumentType: docType,
			Timing:       rec.Stages(),
		}
	}

	a.logger.Info("Extracted document text",
		slog.String("analysis_id", analysisID),
		slog.Int("page_count", snapshot.PageCount),
		slog.Int("text_length", len(snapshot.FullText)))

	// The session switches over before the availability check so a
	// downstream failure still leaves the document usable for questions.
	a.session = session{
		documentText: snapshot.FullText,
		docType:      docType,
		loaded:       true,
	}

	stopCheck := rec.Track("model_check_time")
	available := a.llm.CheckModelAvailability(ctx)
	stopCheck()
	if !available {
		stopTotal()
		stages := rec.Stages()
		stages.Merge("pdf_", snapshot.Timing)
		return &AnalysisResult{
			Success: false,
			Error: fmt.Sprintf("LLM model '%s' not available. Please install it with: ollama pull %s",
				a.cfg.OllamaModel, a.cfg.OllamaModel),
			AnalysisID:   analysisID,
			DocumentType: docType,
			PDFData:      snapshot,
			Timing:       stages,
		}
	}

	stopLLM := rec.Track("llm_extraction_time")
	llmResult := a.llm.ExtractDocumentData(ctx, snapshot.FullText, docType)
	stopLLM()

	if llmResult.Success {
		a.session.structuredData = llmResult.Data
		a.logger.Info("Successfully extracted structured data",
			slog.String("analysis_id", analysisID),
			slog.String("document_type", docType.String()))
	} else {
		a.logger.Warn("LLM extraction failed, raw text remains usable",
			slog.String("analysis_id", analysisID),
			slog.String("error", llmResult.Error))
	}

	stopTotal()
	stages := rec.Stages()
	stages.Merge("pdf_", snapshot.Timing)
	stages.Merge("llm_", llmResult.Timing)

	return &AnalysisResult{
		Success:        true,
		AnalysisID:     analysisID,
		DocumentType:   docType,
		PDFData:        snapshot,
		LLMData:        llmResult,
		StructuredData: a.session.structuredData,
		Timing:         stages,
	}
}

// Ask answers a question about the loaded document, preferring the
// structured data and falling back to the raw text.
func (a *DocumentAnalyzer) Ask(ctx context.Context, question string) *llm_client.AnswerResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ask(ctx, question)
}

func (a *DocumentAnalyzer) ask(ctx context.Context, question string) *llm_client.AnswerResult {
	rec := timing.NewRecorder("total_question_time")
	stopTotal := rec.Track("total_question_time")

	if !a.session.loaded {
		stopTotal()
		return &llm_client.AnswerResult{
			Success:      false,
			Error:        noDocumentMessage,
			Question:     question,
			DocumentType: a.session.docType,
			Timing:       rec.Stages(),
		}
	}

	a.logger.Info("Answering question", slog.String("question", question))

	docContext := a.session.structuredData
	if docContext == "" {
		docContext = a.session.documentText
	}

	result := a.llm.AnswerQuestion(ctx, question, docContext, a.session.docType)
	stopTotal()

	if result.Timing == nil {
		result.Timing = timing.Stages{}
	}
	result.Timing.Merge("", rec.Stages())

	if !result.Success {
		a.logger.Warn("Failed to answer question", slog.String("error", result.Error))
	}

	return result
}

var summaryPrompts = map[document_type.Type]string{
	document_type.Contract: "Provide a brief summary of this contract including the parties involved, contract type, key terms, and important dates.",
	document_type.Resume:   "Provide a brief summary of this resume including the person's name, current role, key skills, and experience.",
	document_type.Generic:  "Provide a brief summary of this document including its main purpose, key entities mentioned, and important information.",
}

// Summary asks the canned per-type summary question about the loaded
// document.
func (a *DocumentAnalyzer) Summary(ctx context.Context) *llm_client.AnswerResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	prompt, ok := summaryPrompts[a.session.docType]
	if !ok {
		prompt = summaryPrompts[document_type.Generic]
	}
	return a.ask(ctx, prompt)
}

// ChunkDocument splits the loaded document's raw text into chunks of
// the configured size.
func (a *DocumentAnalyzer) ChunkDocument() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.session.loaded {
		return nil, ErrNoDocument
	}
	return chunker.Chunk(a.session.documentText, a.cfg.ChunkSize), nil
}

// IsLoaded reports whether a document is currently loaded.
func (a *DocumentAnalyzer) IsLoaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.loaded
}

// DocumentType returns the current session's document type.
func (a *DocumentAnalyzer) DocumentType() document_type.Type {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.docType
}
