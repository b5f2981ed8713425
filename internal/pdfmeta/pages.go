package pdfmeta

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// PageCount returns the number of pages in a PDF held in memory.
func PageCount(data []byte) (int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return 0, fmt.Errorf("opening pdf: %w", err)
	}
	defer func() { _ = doc.Close() }()
	return doc.NumPage(), nil
}
