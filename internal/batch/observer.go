// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"io"

	"github.com/pdiddy/textmill/pkg/types"
)

// Observer receives per-item progress. OutcomeRecorded is invoked exactly
// once per completed item, always from the collector goroutine, so
// implementations need no internal locking.
type Observer interface {
	OutcomeRecorded(outcome types.Outcome)
}

// WriterObserver prints one status line per outcome to W. Failed lines
// carry the source path and the error, which is the structured failure
// record external log sinks consume.
type WriterObserver struct {
	W io.Writer
}

func (o *WriterObserver) OutcomeRecorded(outcome types.Outcome) {
	switch outcome.Status {
	case types.StatusSuccess:
		fmt.Fprintf(o.W, "converted: %s\n", outcome.Item.SourcePath)
	case types.StatusSkipped:
		fmt.Fprintf(o.W, "skipped: %s (output exists)\n", outcome.Item.SourcePath)
	case types.StatusFailed:
		fmt.Fprintf(o.W, "failed: %s (%v)\n", outcome.Item.SourcePath, outcome.Err)
	}
}

// MultiObserver fans each outcome out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OutcomeRecorded(outcome types.Outcome) {
	for _, o := range m {
		o.OutcomeRecorded(outcome)
	}
}
