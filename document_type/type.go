package document_type

import (
	"strings"

	"pdfanalyzer/timing"
)

// Type selects the prompt profile and truncation limits used when
// talking to the model. The set is closed; anything unrecognized at the
// boundary collapses to Generic.
type Type string

const (
	Contract Type = "contract"
	Resume   Type = "resume"
	Generic  Type = "generic"
)

// ParseType normalizes a user-supplied document type. Matching is
// case-insensitive; "report" is accepted but behaves as Generic.
func ParseType(s string) Type {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "contract":
		return Contract
	case "resume":
		return Resume
	default:
		return Generic
	}
}

func (t Type) String() string {
	return string(t)
}

// ExtractedPage is one non-empty page of a parsed document.
type ExtractedPage struct {
	PageNumber int    `json:"page"`
	Text       string `json:"text"`
}

// Snapshot is the parser's output for a single document. It is created
// fresh on every extraction and never mutated afterwards.
type Snapshot struct {
	FullText      string            `json:"full_text"`
	Pages         []ExtractedPage   `json:"pages"`
	Metadata      map[string]string `json:"metadata"`
	PageCount     int               `json:"page_count"`
	FileName      string            `json:"file_name"`
	FileSizeBytes int64             `json:"file_size"`
	Timing        timing.Stages     `json:"timing"`
}
