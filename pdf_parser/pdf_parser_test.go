package pdf_parser

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExtract_MissingPathReturnsNotFound(t *testing.T) {
	parser := New(10, testLogger())

	_, err := parser.Extract(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	if err == nil {
		t.Fatal("Expected an error for a missing path")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %T: %v", err, err)
	}
}

func TestExtract_CorruptFileReturnsExtractionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	if err := os.WriteFile(path, []byte("this is not a pdf document"), 0644); err != nil {
		t.Fatal(err)
	}

	parser := New(10, testLogger())
	_, err := parser.Extract(path)
	if err == nil {
		t.Fatal("Expected an error for a corrupt file")
	}

	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Errorf("Expected ExtractionError, got %T: %v", err, err)
	}
	if extraction.Unwrap() == nil {
		t.Errorf("ExtractionError should wrap the underlying cause")
	}
}

func TestExtract_CorruptDocxReturnsExtractionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	parser := New(10, testLogger())
	_, err := parser.Extract(path)

	var extraction *ExtractionError
	if !errors.As(err, &extraction) {
		t.Errorf("Expected ExtractionError, got %T: %v", err, err)
	}
}

func TestAssemblePages(t *testing.T) {
	tests := []struct {
		name          string
		raw           []string
		expectedPages int
		expectedText  string
		expectedNums  []int
	}{
		{
			name:          "Blank middle page is dropped but keeps numbering",
			raw:           []string{"Intro text", "", "Conclusion"},
			expectedPages: 2,
			expectedText:  "Intro text\n\nConclusion",
			expectedNums:  []int{1, 3},
		},
		{
			name:          "Whitespace-only page counts as blank",
			raw:           []string{"  \n\t ", "Body"},
			expectedPages: 1,
			expectedText:  "Body",
			expectedNums:  []int{2},
		},
		{
			name:          "Page text is trimmed",
			raw:           []string{"  padded  "},
			expectedPages: 1,
			expectedText:  "padded",
			expectedNums:  []int{1},
		},
		{
			name:          "All pages blank",
			raw:           []string{"", "   "},
			expectedPages: 0,
			expectedText:  "",
			expectedNums:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, fullText := assemblePages(tt.raw)

			if len(pages) != tt.expectedPages {
				t.Fatalf("Expected %d pages, got %d", tt.expectedPages, len(pages))
			}
			if fullText != tt.expectedText {
				t.Errorf("Expected full text %q, got %q", tt.expectedText, fullText)
			}
			for i, page := range pages {
				if page.PageNumber != tt.expectedNums[i] {
					t.Errorf("Expected page number %d, got %d", tt.expectedNums[i], page.PageNumber)
				}
			}
		})
	}
}
