// Package extract turns a downloaded file into an analysis string.
// It dispatches on the declared media type: OCR for images, page text for
// PDFs, raw contents for plain text. The categories are disjoint; anything
// else produces an empty analysis with no error.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// NoTextFound is the analysis used when OCR finds nothing in an image.
const NoTextFound = "⚠️ No text found in the image."

// TextGenerator is the slice of the AI responder the extractor needs.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Extractor selects an extraction path per file and feeds the extracted text
// to the AI responder. The OCR and PDF engines are function fields so tests
// can run without the cgo-backed libraries.
type Extractor struct {
	ai      TextGenerator
	ocrText func(path string) (string, error)
	pdfText func(path string) (string, error)
}

func New(ai TextGenerator) *Extractor {
	return &Extractor{
		ai:      ai,
		ocrText: ocrText,
		pdfText: pdfText,
	}
}

// Analyze produces the analysis string for one downloaded file. A file is
// treated as an image when Telegram delivered it as a photo attachment or
// when its MIME type carries the image/ prefix. Unsupported types return an
// empty analysis and no error; the caller persists the record as-is.
func (e *Extractor) Analyze(ctx context.Context, path, mimeType string, isPhoto bool) (string, error) {
	switch {
	case isPhoto || strings.HasPrefix(mimeType, "image/"):
		text, err := e.ocrText(path)
		if err != nil {
			return "", fmt.Errorf("ocr %s: %w", path, err)
		}
		if strings.TrimSpace(text) == "" {
			return NoTextFound, nil
		}
		return e.ai.Generate(ctx, text)

	case mimeType == "application/pdf":
		text, err := e.pdfText(path)
		if err != nil {
			return "", fmt.Errorf("pdf text %s: %w", path, err)
		}
		return e.ai.Generate(ctx, text)

	case mimeType == "text/plain":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return e.ai.Generate(ctx, string(raw))

	default:
		// No extraction path: the analysis stays empty.
		return "", nil
	}
}
