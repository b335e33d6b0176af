// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve maps an input tree of documents onto work items. It walks
// the input root, matches files by extension, and mirrors each match under
// the output root with the text extension. It performs no I/O beyond the
// traversal itself: existence checks on outputs happen lazily in the worker,
// and directories are created lazily before writing.
package resolve

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/textmill/pkg/types"
)

const (
	// DefaultExtension is the document extension matched when none is
	// configured. Matching is case-sensitive, so "DOC.PDF" is not picked up.
	DefaultExtension = ".pdf"

	// textExtension is the extension of produced output files.
	textExtension = ".txt"
)

// ConfigError reports a fatal pre-run configuration problem. It is the only
// error that aborts a run before any item is processed.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

// Resolve enumerates every file under inputRoot matching the configured
// extension and returns one WorkItem per match, carrying cfg's overwrite
// and skip-existing flags unmodified. The output path of each item is the
// input path relative to inputRoot, rooted under outputRoot, with the
// extension replaced by ".txt". For a fixed tree and fixed flags the result
// is deterministic.
func Resolve(inputRoot, outputRoot string, cfg types.ConvertConfig) ([]types.WorkItem, error) {
	info, err := os.Stat(inputRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigError{Msg: fmt.Sprintf("input directory %s does not exist", inputRoot)}
		}
		return nil, &ConfigError{Msg: fmt.Sprintf("reading input directory %s: %v", inputRoot, err)}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Msg: fmt.Sprintf("input path %s is not a directory", inputRoot)}
	}

	ext := cfg.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	var items []types.WorkItem
	err = filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ext {
			return nil
		}

		rel, err := filepath.Rel(inputRoot, path)
		if err != nil {
			return fmt.Errorf("relativizing %s: %w", path, err)
		}
		out := filepath.Join(outputRoot, strings.TrimSuffix(rel, ext)+textExtension)

		items = append(items, types.WorkItem{
			SourcePath:   path,
			OutputPath:   out,
			Overwrite:    cfg.Overwrite,
			SkipExisting: cfg.SkipExisting,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", inputRoot, err)
	}

	return items, nil
}
