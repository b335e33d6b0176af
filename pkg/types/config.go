// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConvertConfig holds settings for a batch conversion run.
type ConvertConfig struct {
	// Workers is the size of the worker pool (default: number of CPUs).
	Workers int `json:"workers" yaml:"workers"`

	// Overwrite allows replacing existing output files.
	Overwrite bool `json:"overwrite" yaml:"overwrite"`

	// SkipExisting skips inputs whose output file already exists.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`

	// Extension is the document extension to match when walking the
	// input tree (default ".pdf"). Matching is case-sensitive.
	Extension string `json:"extension" yaml:"extension"`
}

// ReportConfig holds settings for the run ledger.
type ReportConfig struct {
	// ReportDir is the directory holding the ledger database and exports.
	ReportDir string `json:"report_dir" yaml:"report_dir"`

	// MaxRuns is the default maximum number of runs listed (default 20).
	MaxRuns int `json:"max_runs" yaml:"max_runs"`
}
