package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tably/tably/internal/dataframe"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestOpenCSV(t *testing.T) {
	path := writeFile(t, "data.csv", "name,value\na,1\nb,2\n")

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if src.Kind() != KindCSV {
		t.Errorf("Expected KindCSV, got %v", src.Kind())
	}
	tables := src.Tables()
	if len(tables) != 1 || tables[0] != CSVTableName {
		t.Errorf("Expected single placeholder table, got %v", tables)
	}

	frame, err := src.Load(CSVTableName)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if frame.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", frame.NumRows())
	}
	if frame.Kinds()[1] != dataframe.KindNumber {
		t.Errorf("Value column should infer as number, got %v", frame.Kinds()[1])
	}
}

func TestCSVSemicolonFallback(t *testing.T) {
	// The comma parse fails on the third line (inconsistent field
	// count); the semicolon retry must succeed and keep well-formed
	// rows.
	content := "name;value\nalpha;1\nbeta,x;2\nmalformed\ngamma;3\n"
	path := writeFile(t, "semi.csv", content)

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	frame, err := src.Load(CSVTableName)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cols := frame.Columns()
	if len(cols) != 2 || cols[0] != "name" || cols[1] != "value" {
		t.Fatalf("Header mismatch: %v", cols)
	}
	// "malformed" (one field) is dropped; the other three rows stay.
	if frame.NumRows() != 3 {
		t.Fatalf("Expected 3 rows after dropping malformed, got %d", frame.NumRows())
	}
	if got := frame.Row(1)[0].Text(); got != "beta,x" {
		t.Errorf("Commas inside fields must survive the retry, got %q", got)
	}
}

func TestCSVDateColumnInference(t *testing.T) {
	path := writeFile(t, "dates.csv", "day,amount\n2024-01-01,10\n2024-01-02,20\n")

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	frame, err := src.Load(CSVTableName)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if frame.Kinds()[0] != dataframe.KindTime {
		t.Errorf("Date-like column should infer as timestamp, got %v", frame.Kinds()[0])
	}
}

func TestOpenMissingCSV(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("Expected open failure for missing file")
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Expected *ReadError, got %T: %v", err, err)
	}
}

func TestDetectKind(t *testing.T) {
	cases := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{"a.db", KindSQLite, true},
		{"a.db3", KindSQLite, true},
		{"a.sqlite", KindSQLite, true},
		{"a.SQLITE3", KindSQLite, true},
		{"a.xlsx", KindExcel, true},
		{"a.csv", KindCSV, true},
		{"a.txt", 0, false},
		{"a", 0, false},
	}
	for _, c := range cases {
		kind, err := DetectKind(c.path)
		if c.ok && (err != nil || kind != c.kind) {
			t.Errorf("DetectKind(%q) = %v, %v; expected %v", c.path, kind, err, c.kind)
		}
		if !c.ok && err == nil {
			t.Errorf("DetectKind(%q) should fail", c.path)
		}
	}
}
