// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pdiddy/textmill/pkg/types"
)

// stubExtractor returns canned text per source path, or an error for paths
// listed in fail. It is safe for concurrent use and counts invocations.
type stubExtractor struct {
	mu    sync.Mutex
	text  string
	fail  map[string]bool
	calls int
}

func (s *stubExtractor) Extract(path string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.fail[path] {
		return "", errors.New("parse error")
	}
	if s.text != "" {
		return s.text, nil
	}
	return "text of " + path, nil
}

func (s *stubExtractor) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// captureObserver records every outcome it sees.
type captureObserver struct {
	outcomes []types.Outcome
}

func (c *captureObserver) OutcomeRecorded(o types.Outcome) {
	c.outcomes = append(c.outcomes, o)
}

// makeItems builds n work items with inputs under in and outputs under out.
func makeItems(t *testing.T, in, out string, n int, overwrite, skipExisting bool) []types.WorkItem {
	t.Helper()
	items := make([]types.WorkItem, n)
	for i := range items {
		name := fmt.Sprintf("doc%02d", i)
		src := filepath.Join(in, name+".pdf")
		if err := os.WriteFile(src, []byte("%PDF-1.4"), 0o644); err != nil {
			t.Fatal(err)
		}
		items[i] = types.WorkItem{
			SourcePath:   src,
			OutputPath:   filepath.Join(out, name+".txt"),
			Overwrite:    overwrite,
			SkipExisting: skipExisting,
		}
	}
	return items
}

func checkInvariant(t *testing.T, s types.RunSummary) {
	t.Helper()
	if s.Total != s.Success+s.Skipped+s.Failed {
		t.Errorf("total = %d, but success+skipped+failed = %d",
			s.Total, s.Success+s.Skipped+s.Failed)
	}
}

func TestRun_EmptyItems(t *testing.T) {
	ex := &stubExtractor{}
	summary := Run(context.Background(), nil, ex, Options{Workers: 4})

	if summary.Total != 0 {
		t.Errorf("total = %d, want 0", summary.Total)
	}
	if ex.callCount() != 0 {
		t.Errorf("extractor was called %d times for an empty run", ex.callCount())
	}
	checkInvariant(t, summary)
}

func TestRun_AllSucceed(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 8, false, false)
	ex := &stubExtractor{}

	summary := Run(context.Background(), items, ex, Options{Workers: 3})

	if summary.Success != 8 || summary.Skipped != 0 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 8 successes", summary)
	}
	checkInvariant(t, summary)
	if summary.Elapsed <= 0 {
		t.Error("elapsed should be positive")
	}

	for _, item := range items {
		data, err := os.ReadFile(item.OutputPath)
		if err != nil {
			t.Fatalf("missing output %s: %v", item.OutputPath, err)
		}
		if want := "text of " + item.SourcePath; string(data) != want {
			t.Errorf("output = %q, want %q", data, want)
		}
	}
}

func TestRun_FaultIsolation(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 10, false, false)
	ex := &stubExtractor{fail: map[string]bool{items[4].SourcePath: true}}

	summary := Run(context.Background(), items, ex, Options{Workers: 4})

	if summary.Failed != 1 {
		t.Errorf("failed = %d, want 1", summary.Failed)
	}
	if summary.Success != 9 {
		t.Errorf("success = %d, want 9", summary.Success)
	}
	checkInvariant(t, summary)

	if _, err := os.Stat(items[4].OutputPath); !os.IsNotExist(err) {
		t.Error("failed item should not produce an output file")
	}
}

func TestRun_SkipExistingPreservesFile(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 1, false, true)

	prior := []byte("previously extracted text")
	if err := os.WriteFile(items[0].OutputPath, prior, 0o644); err != nil {
		t.Fatal(err)
	}

	ex := &stubExtractor{}
	summary := Run(context.Background(), items, ex, Options{Workers: 1})

	if summary.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", summary.Skipped)
	}
	if ex.callCount() != 0 {
		t.Error("extractor should not run for a skipped item")
	}

	data, err := os.ReadFile(items[0].OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(prior) {
		t.Error("skipped output file was modified")
	}
	checkInvariant(t, summary)
}

func TestRun_NoOverwriteSkips(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 1, false, false)

	if err := os.WriteFile(items[0].OutputPath, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	summary := Run(context.Background(), items, &stubExtractor{}, Options{Workers: 1})

	if summary.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", summary.Skipped)
	}

	data, _ := os.ReadFile(items[0].OutputPath)
	if string(data) != "old" {
		t.Error("output file was modified despite overwrite being unset")
	}
}

func TestRun_OverwriteReplacesFile(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 1, true, false)

	if err := os.WriteFile(items[0].OutputPath, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	ex := &stubExtractor{text: "fresh extraction"}
	summary := Run(context.Background(), items, ex, Options{Workers: 1})

	if summary.Success != 1 {
		t.Errorf("success = %d, want 1", summary.Success)
	}

	data, err := os.ReadFile(items[0].OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fresh extraction" {
		t.Errorf("output = %q, want fresh content", data)
	}
}

func TestRun_IdempotentSecondPass(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 6, false, true)
	ex := &stubExtractor{}

	first := Run(context.Background(), items, ex, Options{Workers: 2})
	if first.Success != 6 {
		t.Fatalf("first pass success = %d, want 6", first.Success)
	}

	second := Run(context.Background(), items, ex, Options{Workers: 2})
	if second.Success != 0 || second.Skipped != 6 {
		t.Errorf("second pass = %+v, want all skipped", second)
	}
	checkInvariant(t, second)
}

func TestRun_CreatesNestedOutputDirs(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	src := filepath.Join(in, "doc.pdf")
	if err := os.WriteFile(src, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	item := types.WorkItem{
		SourcePath: src,
		OutputPath: filepath.Join(out, "a", "b", "doc.txt"),
	}

	summary := Run(context.Background(), []types.WorkItem{item}, &stubExtractor{}, Options{Workers: 1})

	if summary.Success != 1 {
		t.Fatalf("success = %d, want 1", summary.Success)
	}
	if _, err := os.Stat(item.OutputPath); err != nil {
		t.Errorf("expected nested output at %s: %v", item.OutputPath, err)
	}
}

func TestRun_ObserverSeesEveryOutcome(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 5, false, false)
	obs := &captureObserver{}

	Run(context.Background(), items, &stubExtractor{}, Options{Workers: 2, Observer: obs})

	if len(obs.outcomes) != 5 {
		t.Fatalf("observer saw %d outcomes, want 5", len(obs.outcomes))
	}

	seen := map[string]bool{}
	for _, o := range obs.outcomes {
		if seen[o.Item.SourcePath] {
			t.Errorf("duplicate outcome for %s", o.Item.SourcePath)
		}
		seen[o.Item.SourcePath] = true
	}
}

func TestRun_CancelledContextStopsDispatch(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	items := makeItems(t, in, out, 20, false, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary := Run(ctx, items, &stubExtractor{}, Options{Workers: 2})

	if summary.Total >= 20 {
		t.Errorf("total = %d, expected dispatch to stop early", summary.Total)
	}
	checkInvariant(t, summary)
}

func TestWriterObserver(t *testing.T) {
	item := types.WorkItem{SourcePath: "in/doc.pdf", OutputPath: "out/doc.txt"}

	var b strings.Builder
	obs := &WriterObserver{W: &b}
	obs.OutcomeRecorded(types.Outcome{Item: item, Status: types.StatusSuccess})
	obs.OutcomeRecorded(types.Outcome{Item: item, Status: types.StatusSkipped})
	obs.OutcomeRecorded(types.Outcome{Item: item, Status: types.StatusFailed, Err: errors.New("bad xref")})

	got := b.String()
	for _, want := range []string{"converted: in/doc.pdf", "skipped: in/doc.pdf", "failed: in/doc.pdf (bad xref)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}
