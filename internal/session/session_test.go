package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tably/tably/internal/dataframe"
	"github.com/tably/tably/internal/models"
	"github.com/tably/tably/internal/source"
)

func openCSVSession(t *testing.T, content string) *Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return s
}

func TestFrameCacheHit(t *testing.T) {
	s := openCSVSession(t, "a,b\n1,2\n3,4\n")

	first, err := s.Frame(source.CSVTableName)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	second, err := s.Frame(source.CSVTableName)
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if first != second {
		t.Error("Same table should return the cached frame")
	}
}

func TestViewMemoHitAndInvalidation(t *testing.T) {
	s := openCSVSession(t, "a,b\n1,x\n2,y\n3,x\n")
	key := dataframe.ViewKey{Table: source.CSVTableName, Query: "x"}

	first, err := s.View(key)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	second, err := s.View(key)
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if first != second {
		t.Error("Identical key should return the memoized view")
	}

	// Any key change invalidates the memo.
	changed, err := s.View(dataframe.ViewKey{Table: source.CSVTableName, Query: "y"})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if changed == first {
		t.Error("Changed key must recompute the view")
	}
	if changed.TotalRows() != 1 {
		t.Errorf("Expected 1 row for query 'y', got %d", changed.TotalRows())
	}
}

func TestPageThroughSession(t *testing.T) {
	s := openCSVSession(t, "n\n1\n2\n3\n4\n5\n")
	key := dataframe.ViewKey{Table: source.CSVTableName}

	page, err := s.Page(key, 2, 2, nil)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if page.TotalRows != 5 || page.TotalPages != 3 {
		t.Errorf("Totals wrong: rows=%d pages=%d", page.TotalRows, page.TotalPages)
	}
	if len(page.Rows) != 2 || page.Rows[0][0].Text() != "3" {
		t.Errorf("Page 2 should start at row '3', got %v", page.Rows)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	s := openCSVSession(t, "a,b\n1,2\n")

	// Absent layout is the zero value.
	if got := s.Layout("t"); got.Order != nil || got.Widths != nil {
		t.Errorf("Expected zero layout, got %+v", got)
	}

	layout := models.ColumnLayout{Order: []int{1, 0}, Widths: map[string]int{"a": 12}}
	s.SetLayout("t", layout)
	got := s.Layout("t")
	if len(got.Order) != 2 || got.Order[0] != 1 || got.Widths["a"] != 12 {
		t.Errorf("Layout round trip mismatch: %+v", got)
	}
}
