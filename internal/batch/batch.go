// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch runs resolved work items through a fixed-size pool of
// workers and aggregates their outcomes into a run summary. A run always
// completes: individual item failures are isolated and counted, never
// propagated. The only shared resource is the filesystem, and every item
// writes to a distinct output path, so workers need no locking; the summary
// counters are owned by the single collector loop.
package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/pdiddy/textmill/internal/extract"
	"github.com/pdiddy/textmill/pkg/types"
)

// Options configures a batch run.
type Options struct {
	// Workers is the pool size. Zero or negative selects runtime.NumCPU().
	Workers int

	// Observer receives each outcome as it is recorded. May be nil.
	Observer Observer
}

// Run processes items through a pool of Workers goroutines, each extracting
// text via ex and writing it to the item's output path. Outcomes are
// collected as workers finish, in no particular order, and folded into the
// returned summary. When ctx is cancelled the dispatcher stops feeding new
// items; items already in flight finish and are counted, so the summary
// reflects exactly the items that were attempted.
//
// An empty items slice returns a zero summary without starting any workers.
func Run(ctx context.Context, items []types.WorkItem, ex extract.Extractor, opts Options) types.RunSummary {
	var summary types.RunSummary
	if len(items) == 0 {
		return summary
	}

	start := time.Now()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(items) {
		workers = len(items)
	}

	jobs := make(chan types.WorkItem)
	outcomes := make(chan types.Outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range jobs {
				outcomes <- processItem(ex, item)
			}
		}()
	}

	// Dispatcher. Cancellation is checked between dispatches only, so
	// in-flight items always run to completion.
	go func() {
		defer close(jobs)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case jobs <- item:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	// Single collector owns the counters and the observer.
	for outcome := range outcomes {
		summary.Total++
		switch outcome.Status {
		case types.StatusSuccess:
			summary.Success++
		case types.StatusSkipped:
			summary.Skipped++
		case types.StatusFailed:
			summary.Failed++
		}
		if opts.Observer != nil {
			opts.Observer.OutcomeRecorded(outcome)
		}
	}

	summary.Elapsed = time.Since(start)
	return summary
}
