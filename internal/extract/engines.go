package extract

import (
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// ocrText runs Tesseract over an image file and returns the recognized text.
func ocrText(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", err
	}
	return client.Text()
}

// pdfText concatenates the extracted text of every page, in order.
func pdfText(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		text, err := doc.Text(n)
		if err != nil {
			return "", err
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}
