// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// MuPDFExtractor extracts text through the MuPDF rendering library. It
// handles the widest range of real-world PDFs and is the primary strategy.
type MuPDFExtractor struct{}

// Extract returns the text of every page in source order, joined with a
// newline between pages.
func (e *MuPDFExtractor) Extract(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i+1, path, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}
