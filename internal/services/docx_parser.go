package services

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type DocxParserService interface {
	ExtractText(data []byte) (string, error)
}

type docxParserService struct{}

func NewDocxParserService() DocxParserService {
	return &docxParserService{}
}

// ExtractText keeps every paragraph with visible text, one per line.
func (d *docxParserService) ExtractText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newExtractionError("failed to parse docx", err)
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", newExtractionError("failed to read docx body", err)
	}

	text := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		if strings.TrimSpace(para) != "" {
			text = append(text, para)
		}
	}

	if len(text) == 0 {
		return "", newExtractionError("no text found in DOCX file", nil)
	}

	return strings.Join(text, "\n"), nil
}

// docxParagraphs walks word/document.xml and returns the text of each w:p in order.
func docxParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		current    strings.Builder
		depth      int
		inText     bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid document xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				if depth == 0 {
					current.Reset()
				}
				depth++
			case "t":
				inText = true
			case "tab":
				if depth > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					current.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				depth--
				if depth == 0 {
					paragraphs = append(paragraphs, current.String())
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText && depth > 0 {
				current.Write(el)
			}
		}
	}

	return paragraphs, nil
}
