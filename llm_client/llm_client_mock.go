package llm_client

import (
	"context"

	"pdfanalyzer/document_type"
	"pdfanalyzer/timing"
)

// MockService implements Service for tests. Unset funcs return benign
// successful defaults.
type MockService struct {
	ExtractDocumentDataFunc    func(ctx context.Context, text string, docType document_type.Type) *ExtractionResult
	AnswerQuestionFunc         func(ctx context.Context, question, docContext string, docType document_type.Type) *AnswerResult
	CheckModelAvailabilityFunc func(ctx context.Context) bool
}

func (m *MockService) ExtractDocumentData(ctx context.Context, text string, docType document_type.Type) *ExtractionResult {
	if m.ExtractDocumentDataFunc != nil {
		return m.ExtractDocumentDataFunc(ctx, text, docType)
	}
	return &ExtractionResult{
		Success:      true,
		Data:         "mock structured data",
		DocumentType: docType,
		Timing:       timing.Stages{},
	}
}

func (m *MockService) AnswerQuestion(ctx context.Context, question, docContext string, docType document_type.Type) *AnswerResult {
	if m.AnswerQuestionFunc != nil {
		return m.AnswerQuestionFunc(ctx, question, docContext, docType)
	}
	return &AnswerResult{
		Success:      true,
		Answer:       "mock answer",
		Question:     question,
		DocumentType: docType,
		Timing:       timing.Stages{},
	}
}

func (m *MockService) CheckModelAvailability(ctx context.Context) bool {
	if m.CheckModelAvailabilityFunc != nil {
		return m.CheckModelAvailabilityFunc(ctx)
	}
	return true
}
