// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one run with its outcomes, as written by the exporters.
type ExportEntry struct {
	Run      RunRecord       `json:"run" yaml:"run"`
	Outcomes []OutcomeRecord `json:"outcomes" yaml:"outcomes"`
}

// ExportYAML writes the run history to reportDir/export.yaml.
func (s *Store) ExportYAML(ctx context.Context, limit int) error {
	entries, err := s.exportEntries(ctx, limit)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(filepath.Join(s.reportDir, "export.yaml"), data, 0o644)
}

// ExportJSON writes the run history to reportDir/export.json.
func (s *Store) ExportJSON(ctx context.Context, limit int) error {
	entries, err := s.exportEntries(ctx, limit)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(filepath.Join(s.reportDir, "export.json"), data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, limit int) ([]ExportEntry, error) {
	runs, err := s.Runs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(runs))
	for i, r := range runs {
		outcomes, err := s.Outcomes(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		entries[i] = ExportEntry{Run: r, Outcomes: outcomes}
	}
	return entries, nil
}
