// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements text extraction from PDF documents with a
// primary/fallback strategy pair. The MuPDF-backed strategy runs first;
// when its output is near-empty the pure-Go strategy is consulted instead,
// on the assumption that a near-empty result indicates a scanned or
// malformed document better handled by a different parsing model.
package extract

import (
	"fmt"
	"strings"
)

// MinTextThreshold is the trimmed-length boundary below which the primary
// strategy's output is considered near-empty and the fallback is invoked.
const MinTextThreshold = 50

// Extractor extracts the plain text of a whole document. Different parsing
// backends implement this interface.
type Extractor interface {
	// Extract reads the document at path and returns its text content.
	Extract(path string) (string, error)
}

// Error wraps an extraction failure with the path of the offending document.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Policy selects between a primary and a fallback Extractor. It is itself
// an Extractor, so callers and tests can substitute either layer.
type Policy struct {
	primary  Extractor
	fallback Extractor
}

// NewPolicy builds a Policy over the given strategies.
func NewPolicy(primary, fallback Extractor) *Policy {
	return &Policy{primary: primary, fallback: fallback}
}

// NewDefaultPolicy builds the production policy: MuPDF primary with the
// pure-Go reader as fallback.
func NewDefaultPolicy() *Policy {
	return NewPolicy(&MuPDFExtractor{}, &PureExtractor{})
}

// Extract runs the primary strategy and, when its output trimmed of
// surrounding whitespace is shorter than MinTextThreshold, returns the
// fallback strategy's output instead. The fallback result is used verbatim
// even if it is also short; there is no further fallback chain. Errors from
// either strategy are never suppressed: the caller converts them into a
// failed outcome.
func (p *Policy) Extract(path string) (string, error) {
	text, err := p.primary.Extract(path)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}

	if len(strings.TrimSpace(text)) >= MinTextThreshold {
		return text, nil
	}

	text, err = p.fallback.Extract(path)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}
	return text, nil
}
