package source

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tably/tably/internal/dataframe"
)

func createTestDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	stmts := []string{
		`CREATE TABLE people (name TEXT, age INTEGER, height REAL)`,
		`INSERT INTO people VALUES ('alice', 30, 1.65), ('bob', 25, 1.8), ('carol', NULL, 1.7)`,
		`CREATE TABLE empty_table (id INTEGER)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to execute %q: %v", stmt, err)
		}
	}
	return path
}

func TestOpenSQLite(t *testing.T) {
	src, err := Open(createTestDB(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if src.Kind() != KindSQLite {
		t.Errorf("Expected KindSQLite, got %v", src.Kind())
	}

	tables := src.Tables()
	if len(tables) != 2 {
		t.Fatalf("Expected 2 tables, got %v", tables)
	}
	if tables[0] != "people" || tables[1] != "empty_table" {
		t.Errorf("Tables out of catalog order: %v", tables)
	}
}

func TestLoadSQLiteTable(t *testing.T) {
	src, err := Open(createTestDB(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	frame, err := src.Load("people")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if frame.NumRows() != 3 {
		t.Fatalf("Expected 3 rows, got %d", frame.NumRows())
	}

	cols := frame.Columns()
	if cols[0] != "name" || cols[1] != "age" || cols[2] != "height" {
		t.Errorf("Column order mismatch: %v", cols)
	}
	if frame.Kinds()[1] != dataframe.KindNumber {
		t.Errorf("INTEGER column should be numeric, got %v", frame.Kinds()[1])
	}

	// NULL survives as a null cell.
	if !frame.Row(2)[1].IsNull() {
		t.Error("NULL age should be a null cell")
	}
	if got := frame.Row(0)[0].Text(); got != "alice" {
		t.Errorf("Expected 'alice', got %q", got)
	}
}

func TestSQLiteLargeIntegerSurvives(t *testing.T) {
	// SQLite INTEGER is int64; values above 2^53 must not pass through
	// float64 on the way to the cell.
	path := filepath.Join(t.TempDir(), "big.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE t (n INTEGER)`); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t VALUES (9007199254740993), (1000000)`); err != nil {
		t.Fatalf("Failed to insert: %v", err)
	}
	_ = db.Close()

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	frame, err := src.Load("t")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := frame.Row(0)[0].Text(); got != "9007199254740993" {
		t.Errorf("Expected exact integer text, got %q", got)
	}
	if got := frame.Row(1)[0].Text(); got != "1000000" {
		t.Errorf("Expected \"1000000\", got %q", got)
	}
}

func TestLoadMissingTable(t *testing.T) {
	src, err := Open(createTestDB(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	_, err = src.Load("does_not_exist")
	if err == nil {
		t.Fatal("Expected error for missing table")
	}
	var loadErr *TableLoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("Expected *TableLoadError, got %T: %v", err, err)
	}
	if loadErr.Table != "does_not_exist" {
		t.Errorf("Error should name the table, got %q", loadErr.Table)
	}
}

func TestOpenCorruptDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.db")
	if err := os.WriteFile(path, []byte("this is not a sqlite file at all"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	_, err := Open(path)
	if err == nil {
		t.Fatal("Expected open failure for corrupt database")
	}
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("Expected *ReadError, got %T: %v", err, err)
	}
}

func TestOpenEmptyDatabaseFails(t *testing.T) {
	// A database with no user tables is an open failure, not an empty
	// listing.
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE t (id INTEGER)`); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	if _, err := db.Exec(`DROP TABLE t`); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}
	_ = db.Close()

	_, err = Open(path)
	if !errors.Is(err, ErrNoTables) {
		t.Errorf("Expected ErrNoTables, got %v", err)
	}
}
