package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sosatree/sosatree/pkg/chart"
	"github.com/sosatree/sosatree/pkg/pipeline"
)

// TestRunLayoutWritesChartFile runs the layout command path end to end and
// reads the saved chart back, so the written file is a real chart.json and
// not just any bytes at the output path.
func TestRunLayoutWritesChartFile(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "family.ged")
	if err := os.WriteFile(source, []byte(serveTestGedcom), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	opts := pipeline.Options{Source: source, Generations: 2}
	if err := opts.ValidateForParse(); err != nil {
		t.Fatalf("ValidateForParse() error: %v", err)
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout() error: %v", err)
	}

	c := New(io.Discard, LogInfo)
	output := filepath.Join(dir, "family.chart.json")
	if err := c.runLayout(context.Background(), opts, output, true); err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}

	ch, err := chart.ReadFile(output)
	if err != nil {
		t.Fatalf("ReadFile(%s) error: %v", output, err)
	}
	if ch.RootXref != "I1" {
		t.Errorf("RootXref = %q, want %q", ch.RootXref, "I1")
	}
	if ch.Generations != 2 {
		t.Errorf("Generations = %d, want 2", ch.Generations)
	}
	if len(ch.Boxes) != 3 {
		t.Errorf("len(Boxes) = %d, want 3", len(ch.Boxes))
	}
	if ch.Width <= 0 || ch.Height <= 0 {
		t.Errorf("canvas = %dx%d, want positive dimensions", ch.Width, ch.Height)
	}
}
