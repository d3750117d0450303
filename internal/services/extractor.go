package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/metrics"
	"alfredoptarigan/resume-analyzer/internal/models"
)

// ExtractorService turns an uploaded resume into plain text. Every error it
// returns is an *ExtractionError.
type ExtractorService interface {
	Extract(ctx context.Context, doc models.ResumeDocument) (string, error)
}

type extractorService struct {
	pdfParser  PDFParserService
	docxParser DocxParserService
	docParser  DocParserService
	logger     *zap.Logger
}

func NewExtractorService(
	pdfParser PDFParserService,
	docxParser DocxParserService,
	docParser DocParserService,
	logger *zap.Logger,
) ExtractorService {
	return &extractorService{
		pdfParser:  pdfParser,
		docxParser: docxParser,
		docParser:  docParser,
		logger:     logger,
	}
}

// Extract dispatches on the declared extension only; content is never sniffed.
func (e *extractorService) Extract(ctx context.Context, doc models.ResumeDocument) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(doc.Extension)), ".")

	text, err := e.extract(ctx, format, doc.Content)
	if err != nil {
		var extractionErr *ExtractionError
		if !errors.As(err, &extractionErr) {
			err = newExtractionError("failed to extract text", err)
		}

		metrics.ExtractionsTotal.WithLabelValues(formatLabel(format), metrics.OutcomeExtraction).Inc()
		e.logger.Warn("resume extraction failed",
			zap.String("filename", doc.Filename),
			zap.String("format", format),
			zap.Error(err),
		)
		return "", err
	}

	metrics.ExtractionsTotal.WithLabelValues(format, metrics.OutcomeSuccess).Inc()
	e.logger.Debug("resume extracted",
		zap.String("filename", doc.Filename),
		zap.String("format", format),
		zap.Int("characters", len(text)),
	)

	return text, nil
}

func (e *extractorService) extract(ctx context.Context, format string, content []byte) (string, error) {
	switch format {
	case "pdf", "docx", "doc":
	default:
		return "", newExtractionError("unsupported file type. Only PDF, DOC, and DOCX are allowed", nil)
	}

	if len(content) == 0 {
		return "", newExtractionError("empty document", nil)
	}

	switch format {
	case "pdf":
		return e.pdfParser.ExtractText(content)
	case "docx":
		return e.docxParser.ExtractText(content)
	default:
		return e.docParser.ExtractText(ctx, content)
	}
}

func formatLabel(format string) string {
	switch format {
	case "pdf", "docx", "doc":
		return format
	default:
		return "unsupported"
	}
}
