package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tably/tably/internal/stats"
)

func TestSaveHistogramPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.png")
	xs := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5}
	if err := SaveHistogram("v", xs, 5, path); err != nil {
		t.Fatalf("SaveHistogram failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Plot file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Plot file is empty")
	}
}

func TestSaveScatterJPG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scatter.jpg")
	xs := []float64{1, 2, 3, 4}
	ys := []float64{2, 4, 6, 8}
	if err := SaveScatter("x", "y", xs, ys, path); err != nil {
		t.Fatalf("SaveScatter failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Plot file missing: %v", err)
	}
}

func TestSaveCorrelationHeatmap(t *testing.T) {
	m, err := stats.Correlate(
		[]string{"a", "b"},
		[][]float64{{1, 2, 3}, {3, 2, 1}},
	)
	if err != nil {
		t.Fatalf("Correlate failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "corr.png")
	if err := SaveCorrelationHeatmap(m, path); err != nil {
		t.Fatalf("SaveCorrelationHeatmap failed: %v", err)
	}
}

func TestRejectsUnsupportedFormat(t *testing.T) {
	err := SaveHistogram("v", []float64{1, 2}, 2, filepath.Join(t.TempDir(), "hist.gif"))
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
}
