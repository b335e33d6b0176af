// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PureExtractor extracts text with a pure-Go PDF reader. Its parsing model
// differs from MuPDF's, which is exactly why it serves as the fallback for
// documents where the primary comes back near-empty.
type PureExtractor struct{}

// Extract returns the text of every page in source order, concatenated
// directly. Pages that yield no text contribute nothing. Note the join rule
// differs from MuPDFExtractor on purpose; downstream consumers may depend
// on either shape.
func (e *PureExtractor) Extract(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
