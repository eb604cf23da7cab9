package pdf_parser

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv/v2"
	"github.com/ledongthuc/pdf"

	"pdfanalyzer/document_type"
	"pdfanalyzer/timing"
)

// Parser extracts text and metadata from PDF (and DOCX) files. It holds
// no state across calls.
type Parser struct {
	maxPages int
	logger   *slog.Logger
}

func New(maxPages int, logger *slog.Logger) *Parser {
	return &Parser{
		maxPages: maxPages,
		logger:   logger,
	}
}

// Extract reads at most maxPages pages from the document at path and
// assembles a snapshot. Pages whose text trims to empty are dropped
// from the page list and the full-text join but still count toward the
// page cap.
func (p *Parser) Extract(path string) (*document_type.Snapshot, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, &ExtractionError{Path: path, Err: err}
	}

	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return p.extractDocx(path, info)
	}
	return p.extractPDF(path, info)
}

func (p *Parser) extractPDF(path string, info os.FileInfo) (snap *document_type.Snapshot, err error) {
	rec := timing.NewRecorder(
		"file_open_time",
		"reader_init_time",
		"page_extraction_time",
		"text_processing_time",
		"pages_per_second",
	)

	// ledongthuc/pdf panics on some malformed documents instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			snap = nil
			err = &ExtractionError{Path: path, Err: fmt.Errorf("pdf parser panic: %v", r)}
		}
	}()

	stopOpen := rec.Track("file_open_time")
	data, readErr := os.ReadFile(path)
	stopOpen()
	if readErr != nil {
		return nil, &ExtractionError{Path: path, Err: readErr}
	}

	stopInit := rec.Track("reader_init_time")
	reader, initErr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	stopInit()
	if initErr != nil {
		p.logger.Error("Failed to create PDF reader",
			slog.String("path", path),
			slog.String("error", initErr.Error()),
			slog.Int("data_size", len(data)))
		return nil, &ExtractionError{Path: path, Err: initErr}
	}

	totalPages := reader.NumPage()
	pageCount := totalPages
	if pageCount > p.maxPages {
		pageCount = p.maxPages
	}

	p.logger.Debug("Starting PDF text extraction",
		slog.String("path", path),
		slog.Int("total_pages", totalPages),
		slog.Int("pages_to_read", pageCount))

	stopPages := rec.Track("page_extraction_time")
	raw := make([]string, 0, pageCount)
	for pageIndex := 1; pageIndex <= pageCount; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			p.logger.Warn("Null page encountered",
				slog.Int("page_number", pageIndex))
			raw = append(raw, "")
			continue
		}

		text, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			return nil, &ExtractionError{Path: path,
				Err: fmt.Errorf("failed to extract text from page %d: %w", pageIndex, pageErr)}
		}
		raw = append(raw, text)
	}
	stopPages()

	if sec := rec.Seconds("page_extraction_time"); sec > 0 {
		rec.Set("pages_per_second", float64(pageCount)/sec)
	}

	stopText := rec.Track("text_processing_time")
	pages, fullText := assemblePages(raw)
	stopText()

	p.logger.Info("Successfully extracted text from PDF",
		slog.String("file_name", filepath.Base(path)),
		slog.Int("page_count", pageCount),
		slog.Int("non_empty_pages", len(pages)),
		slog.Int("total_text_length", len(fullText)))

	return &document_type.Snapshot{
		FullText:      fullText,
		Pages:         pages,
		Metadata:      documentMetadata(reader),
		PageCount:     pageCount,
		FileName:      filepath.Base(path),
		FileSizeBytes: info.Size(),
		Timing:        rec.Stages(),
	}, nil
}

// extractDocx runs Word documents through docconv and reports them as a
// single-page snapshot.
func (p *Parser) extractDocx(path string, info os.FileInfo) (*document_type.Snapshot, error) {
	rec := timing.NewRecorder(
		"file_open_time",
		"reader_init_time",
		"page_extraction_time",
		"text_processing_time",
		"pages_per_second",
	)

	stopConvert := rec.Track("page_extraction_time")
	res, err := docconv.ConvertPath(path)
	stopConvert()
	if err != nil {
		p.logger.Error("Failed to convert Word document",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, &ExtractionError{Path: path, Err: err}
	}

	stopText := rec.Track("text_processing_time")
	pages, fullText := assemblePages([]string{res.Body})
	stopText()

	meta := res.Meta
	if meta == nil {
		meta = map[string]string{}
	}

	p.logger.Info("Successfully extracted text from Word document",
		slog.String("file_name", filepath.Base(path)),
		slog.Int("text_length", len(fullText)))

	return &document_type.Snapshot{
		FullText:      fullText,
		Pages:         pages,
		Metadata:      meta,
		PageCount:     1,
		FileName:      filepath.Base(path),
		FileSizeBytes: info.Size(),
		Timing:        rec.Stages(),
	}, nil
}

// assemblePages trims each page, drops the ones that trim to empty and
// joins the rest with a blank line. Page numbers follow the original
// order; no renumbering around dropped pages.
func assemblePages(raw []string) ([]document_type.ExtractedPage, string) {
	var pages []document_type.ExtractedPage
	var parts []string

	for i, text := range raw {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		pages = append(pages, document_type.ExtractedPage{
			PageNumber: i + 1,
			Text:       trimmed,
		})
		parts = append(parts, trimmed)
	}

	return pages, strings.Join(parts, "\n\n")
}

func documentMetadata(reader *pdf.Reader) map[string]string {
	meta := make(map[string]string)
	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return meta
	}
	for _, key := range info.Keys() {
		value := info.Key(key)
		if value.Kind() == pdf.String || value.Kind() == pdf.Name {
			meta[key] = value.Text()
		}
	}
	return meta
}
