package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

type PDFParserService interface {
	ExtractText(data []byte) (string, error)
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractText joins the text of every non-empty page with a single space.
func (p *pdfParserService) ExtractText(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = newExtractionError("failed to read PDF", fmt.Errorf("%v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newExtractionError("failed to open PDF", err)
	}

	totalPage := r.NumPage()
	if totalPage == 0 {
		return "", newExtractionError("PDF file is empty", nil)
	}

	pages := make([]string, 0, totalPage)
	var pageErrs []error
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			pageErrs = append(pageErrs, fmt.Errorf("page %d: %w", pageIndex, err))
			continue
		}

		// GetPlainText emits positioning newlines around text runs.
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	if len(pages) == 0 {
		return "", newExtractionError("no text could be extracted from the PDF", errors.Join(pageErrs...))
	}

	return strings.Join(pages, " "), nil
}
