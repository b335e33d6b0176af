// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data model for the textmill pipeline:
// work items, per-item outcomes, run summaries, and configuration.
package types

import "time"

// WorkItem is one resolved unit of work: an input document paired with its
// target output path and the skip/overwrite flags in effect for the run.
// WorkItems are immutable once created by the resolver and consumed exactly
// once by a worker.
type WorkItem struct {
	// SourcePath is the path to the input document.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is the path the extracted text is written to. It mirrors
	// SourcePath's position relative to the input root, rooted under the
	// output root, with the text extension.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Overwrite allows replacing an existing output file.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// SkipExisting skips items whose output file already exists.
	// Overlaps with Overwrite being unset; both knobs are kept because
	// they are surfaced as independent CLI toggles.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`
}

// OutcomeStatus is the terminal state of one attempted WorkItem.
type OutcomeStatus string

const (
	StatusSuccess OutcomeStatus = "success"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome records the result of processing a single WorkItem. Exactly one
// Outcome is produced per item; it is never mutated after creation.
type Outcome struct {
	Item   WorkItem
	Status OutcomeStatus

	// Err holds the cause when Status is StatusFailed, nil otherwise.
	Err error
}

// RunSummary aggregates the counters and timing for one complete batch run.
// The invariant Total == Success + Skipped + Failed holds at run completion.
type RunSummary struct {
	Total   int           `json:"total" yaml:"total"`
	Success int           `json:"success" yaml:"success"`
	Skipped int           `json:"skipped" yaml:"skipped"`
	Failed  int           `json:"failed" yaml:"failed"`
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`
}

// HasFailures reports whether any items failed during the run.
func (s RunSummary) HasFailures() bool {
	return s.Failed > 0
}
