package llm_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pdfanalyzer/document_type"
	"pdfanalyzer/timing"
)

// Service is the gateway contract the analysis pipeline consumes.
type Service interface {
	ExtractDocumentData(ctx context.Context, text string, docType document_type.Type) *ExtractionResult
	AnswerQuestion(ctx context.Context, question, docContext string, docType document_type.Type) *AnswerResult
	CheckModelAvailability(ctx context.Context) bool
}

// ExtractionResult is the envelope for one structured-extraction call.
// Timing is always populated; stages skipped because of a failure are
// reported as 0.
type ExtractionResult struct {
	Success         bool               `json:"success"`
	Data            string             `json:"data,omitempty"`
	Error           string             `json:"error,omitempty"`
	Model           string             `json:"model"`
	DocumentType    document_type.Type `json:"document_type"`
	Timing          timing.Stages      `json:"timing"`
	TextLength      int                `json:"text_length"`
	PromptLength    int                `json:"prompt_length"`
	ResponseLength  int                `json:"response_length"`
	TokensPerSecond float64            `json:"tokens_per_second"`
}

// AnswerResult is the envelope for one question-answering call.
type AnswerResult struct {
	Success         bool               `json:"success"`
	Answer          string             `json:"answer,omitempty"`
	Error           string             `json:"error,omitempty"`
	Question        string             `json:"question"`
	Model           string             `json:"model"`
	DocumentType    document_type.Type `json:"document_type"`
	Timing          timing.Stages      `json:"timing"`
	QuestionLength  int                `json:"question_length"`
	ContextLength   int                `json:"context_length"`
	PromptLength    int                `json:"prompt_length"`
	AnswerLength    int                `json:"answer_length"`
	TokensPerSecond float64            `json:"tokens_per_second"`
}

// Client talks to a local Ollama instance over its HTTP API.
type Client struct {
	host       string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(host, model string, requestTimeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		host:       strings.TrimRight(host, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

// ExtractDocumentData asks the model for the structured fields of the
// given document type. The input text is cut to the profile's character
// budget before substitution into the instruction template.
func (c *Client) ExtractDocumentData(ctx context.Context, text string, docType document_type.Type) *ExtractionResult {
	rec := timing.NewRecorder("total_extraction_time", "prompt_preparation_time", "llm_request_time")
	stopTotal := rec.Track("total_extraction_time")

	stopPrep := rec.Track("prompt_preparation_time")
	profile := profileFor(docType)
	prompt := strings.Replace(profile.template, textPlaceholder, truncate(text, profile.inputLimit), 1)
	stopPrep()

	stopRequest := rec.Track("llm_request_time")
	content, err := c.chat(ctx, profile.system, prompt)
	if err != nil {
		// Failed requests report a zero round trip, matching the
		// "unreached stage" convention.
		rec.Set("llm_request_time", 0)
		stopTotal()

		c.logger.Error("Error extracting document data",
			slog.String("document_type", docType.String()),
			slog.String("model", c.model),
			slog.String("error", err.Error()))

		return &ExtractionResult{
			Success:      false,
			Error:        err.Error(),
			Model:        c.model,
			DocumentType: docType,
			Timing:       rec.Stages(),
			TextLength:   len(text),
			PromptLength: len(prompt),
		}
	}
	stopRequest()
	stopTotal()

	return &ExtractionResult{
		Success:         true,
		Data:            content,
		Model:           c.model,
		DocumentType:    docType,
		Timing:          rec.Stages(),
		TextLength:      len(text),
		PromptLength:    len(prompt),
		ResponseLength:  len(content),
		TokensPerSecond: charsPerSecond(len(content), rec.Seconds("llm_request_time")),
	}
}

// AnswerQuestion answers a free-form question against the given context
// (structured data or raw text), truncated to a uniform budget.
func (c *Client) AnswerQuestion(ctx context.Context, question, docContext string, docType document_type.Type) *AnswerResult {
	rec := timing.NewRecorder("total_answer_time", "prompt_preparation_time", "llm_request_time")
	stopTotal := rec.Track("total_answer_time")

	stopPrep := rec.Track("prompt_preparation_time")
	prompt := answerPrompt(question, docContext, docType)
	system := answerSystemFor(docType)
	stopPrep()

	stopRequest := rec.Track("llm_request_time")
	content, err := c.chat(ctx, system, prompt)
	if err != nil {
		rec.Set("llm_request_time", 0)
		stopTotal()

		c.logger.Error("Error answering question",
			slog.String("document_type", docType.String()),
			slog.String("model", c.model),
			slog.String("error", err.Error()))

		return &AnswerResult{
			Success:        false,
			Error:          err.Error(),
			Question:       question,
			Model:          c.model,
			DocumentType:   docType,
			Timing:         rec.Stages(),
			QuestionLength: len(question),
			ContextLength:  len(docContext),
			PromptLength:   len(prompt),
		}
	}
	stopRequest()
	stopTotal()

	return &AnswerResult{
		Success:         true,
		Answer:          content,
		Question:        question,
		Model:           c.model,
		DocumentType:    docType,
		Timing:          rec.Stages(),
		QuestionLength:  len(question),
		ContextLength:   len(docContext),
		PromptLength:    len(prompt),
		AnswerLength:    len(content),
		TokensPerSecond: charsPerSecond(len(content), rec.Seconds("llm_request_time")),
	}
}

// CheckModelAvailability reports whether the configured model is
// installed on the Ollama host. Any failure of the query itself counts
// as "not available" rather than an error.
func (c *Client) CheckModelAvailability(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/tags", nil)
	if err != nil {
		c.logger.Error("Error checking model availability", slog.String("error", err.Error()))
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Error checking model availability", slog.String("error", err.Error()))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Error checking model availability",
			slog.Int("status_code", resp.StatusCode))
		return false
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.logger.Error("Error decoding model list", slog.String("error", err.Error()))
		return false
	}

	for _, m := range tags.Models {
		if m.Name == c.model {
			return true
		}
	}
	return false
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// chat performs one synchronous system+user exchange. No automatic
// retries; failures surface to the caller's envelope.
func (c *Client) chat(ctx context.Context, system, user string) (string, error) {
	requestBody, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/chat", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		rawBody, _ := io.ReadAll(resp.Body)
		return "", &HTTPError{StatusCode: resp.StatusCode, RawBody: string(rawBody)}
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %w", err)
	}

	if result.Message.Content == "" {
		return "", fmt.Errorf("empty response content from Ollama API")
	}

	return result.Message.Content, nil
}

func charsPerSecond(length int, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return float64(length) / seconds
}
