package extract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAI records prompts and returns a canned analysis.
type fakeAI struct {
	prompts []string
	result  string
	err     error
}

func (f *fakeAI) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.result, f.err
}

func newTestExtractor(ai *fakeAI, ocr, pdf func(string) (string, error)) *Extractor {
	e := New(ai)
	if ocr != nil {
		e.ocrText = ocr
	}
	if pdf != nil {
		e.pdfText = pdf
	}
	return e
}

func TestAnalyze_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("quarterly numbers"), 0o644))

	ai := &fakeAI{result: "summary of the numbers"}
	e := newTestExtractor(ai, nil, nil)

	analysis, err := e.Analyze(context.Background(), path, "text/plain", false)

	assert.NoError(t, err)
	assert.Equal(t, "summary of the numbers", analysis)
	require.Len(t, ai.prompts, 1)
	assert.Equal(t, "quarterly numbers", ai.prompts[0])
}

func TestAnalyze_ImageWithText(t *testing.T) {
	ai := &fakeAI{result: "analysis of the sign"}
	e := newTestExtractor(ai, func(string) (string, error) {
		return "STOP AHEAD", nil
	}, nil)

	analysis, err := e.Analyze(context.Background(), "photo.png", "image/png", false)

	assert.NoError(t, err)
	assert.Equal(t, "analysis of the sign", analysis)
	require.Len(t, ai.prompts, 1)
	assert.Equal(t, "STOP AHEAD", ai.prompts[0])
}

// Photo attachments carry no MIME type; the attachment kind alone selects the
// OCR path.
func TestAnalyze_PhotoAttachmentWithoutMime(t *testing.T) {
	ai := &fakeAI{result: "ok"}
	e := newTestExtractor(ai, func(string) (string, error) {
		return "some text", nil
	}, nil)

	_, err := e.Analyze(context.Background(), "image.jpg", "", true)

	assert.NoError(t, err)
	assert.Len(t, ai.prompts, 1)
}

// Whitespace-only OCR output yields the fixed result without an AI call.
func TestAnalyze_ImageNoText(t *testing.T) {
	ai := &fakeAI{result: "should not be used"}
	e := newTestExtractor(ai, func(string) (string, error) {
		return "  \n\t", nil
	}, nil)

	analysis, err := e.Analyze(context.Background(), "blank.png", "image/png", false)

	assert.NoError(t, err)
	assert.Equal(t, NoTextFound, analysis)
	assert.Empty(t, ai.prompts, "AI responder must not be invoked for empty OCR text")
}

func TestAnalyze_PDF(t *testing.T) {
	ai := &fakeAI{result: "pdf analysis"}
	e := newTestExtractor(ai, nil, func(string) (string, error) {
		return "page one\npage two", nil
	})

	analysis, err := e.Analyze(context.Background(), "report.pdf", "application/pdf", false)

	assert.NoError(t, err)
	assert.Equal(t, "pdf analysis", analysis)
	require.Len(t, ai.prompts, 1)
	assert.Equal(t, "page one\npage two", ai.prompts[0])
}

// Unsupported types fall through with an empty analysis and no error.
// This documents the current gap rather than inventing an error path.
func TestAnalyze_UnsupportedType(t *testing.T) {
	ai := &fakeAI{result: "should not be used"}
	e := newTestExtractor(ai, nil, nil)

	analysis, err := e.Analyze(context.Background(), "archive.zip", "application/zip", false)

	assert.NoError(t, err)
	assert.Empty(t, analysis)
	assert.Empty(t, ai.prompts)
}

func TestAnalyze_OCRError(t *testing.T) {
	ai := &fakeAI{}
	e := newTestExtractor(ai, func(string) (string, error) {
		return "", errors.New("tesseract exploded")
	}, nil)

	_, err := e.Analyze(context.Background(), "broken.png", "image/png", false)

	assert.Error(t, err)
	assert.Empty(t, ai.prompts)
}
