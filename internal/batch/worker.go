// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/textmill/internal/extract"
	"github.com/pdiddy/textmill/pkg/types"
)

// processItem handles one work item end to end: skip check, extraction,
// output directory creation, and write. Every error is absorbed into a
// failed outcome so the pool keeps running.
//
// The skip check is evaluated here, just before extraction work, rather
// than at resolve time: SkipExisting skips when the output exists, and an
// existing output is also skipped unless Overwrite is set. The two flags
// overlap in effect but remain independent configuration knobs.
func processItem(ex extract.Extractor, item types.WorkItem) types.Outcome {
	if _, err := os.Stat(item.OutputPath); err == nil {
		if item.SkipExisting || !item.Overwrite {
			return types.Outcome{Item: item, Status: types.StatusSkipped}
		}
	}

	text, err := ex.Extract(item.SourcePath)
	if err != nil {
		return types.Outcome{Item: item, Status: types.StatusFailed, Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(item.OutputPath), 0o755); err != nil {
		return types.Outcome{
			Item:   item,
			Status: types.StatusFailed,
			Err:    fmt.Errorf("creating output directory: %w", err),
		}
	}

	if err := os.WriteFile(item.OutputPath, []byte(text), 0o644); err != nil {
		return types.Outcome{
			Item:   item,
			Status: types.StatusFailed,
			Err:    fmt.Errorf("writing output: %w", err),
		}
	}

	return types.Outcome{Item: item, Status: types.StatusSuccess}
}
