// Package source abstracts the three supported file kinds (SQLite
// databases, Excel workbooks, CSV files) behind one capability: list
// table names and load a table by name into a columnar frame.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tably/tably/internal/dataframe"
)

// Kind identifies the detected file kind of a source.
type Kind int

const (
	KindSQLite Kind = iota
	KindExcel
	KindCSV
)

// String returns the kind name used in status lines.
func (k Kind) String() string {
	switch k {
	case KindSQLite:
		return "sqlite"
	case KindExcel:
		return "excel"
	default:
		return "csv"
	}
}

// CSVTableName is the placeholder table name a CSV source exposes.
const CSVTableName = "CSV file"

// ErrUnsupportedFileKind means the file extension matches no
// recognized kind. Fatal to the open attempt.
var ErrUnsupportedFileKind = errors.New("unsupported file kind")

// ErrNoTables means the source opened but exposes no tables, which is
// treated as an open failure.
var ErrNoTables = errors.New("no tables found")

// ReadError means the file exists but could not be parsed as its
// detected kind. Fatal to the open attempt.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// TableLoadError means a specific table or sheet failed after the
// source opened successfully. Other tables remain selectable.
type TableLoadError struct {
	Table string
	Err   error
}

func (e *TableLoadError) Error() string {
	return fmt.Sprintf("cannot load table %q: %v", e.Table, e.Err)
}

func (e *TableLoadError) Unwrap() error { return e.Err }

// DetectKind maps a file extension onto a source kind.
func DetectKind(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".db3", ".sqlite", ".sqlite3":
		return KindSQLite, nil
	case ".xlsx":
		return KindExcel, nil
	case ".csv":
		return KindCSV, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFileKind, filepath.Ext(path))
	}
}

// Source is an opened file treated as a provider of one or more
// tables. Immutable once opened.
type Source struct {
	path   string
	kind   Kind
	tables []string
}

// Open detects the file kind and enumerates its tables. An empty
// table list is an open failure.
func Open(path string) (*Source, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return nil, err
	}

	var tables []string
	switch kind {
	case KindSQLite:
		tables, err = listSQLiteTables(path)
	case KindExcel:
		tables, err = listExcelSheets(path)
	case KindCSV:
		tables, err = checkCSVReadable(path)
	}
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if len(tables) == 0 {
		return nil, &ReadError{Path: path, Err: ErrNoTables}
	}
	return &Source{path: path, kind: kind, tables: tables}, nil
}

// Path returns the file path the source was opened from.
func (s *Source) Path() string { return s.path }

// Kind returns the detected file kind.
func (s *Source) Kind() Kind { return s.kind }

// Tables returns the table names in source order: user tables for
// SQLite, sheets in workbook order for Excel, the fixed placeholder
// for CSV.
func (s *Source) Tables() []string { return s.tables }

// Load reads the named table eagerly into a frame. Failures wrap into
// a TableLoadError carrying the table name.
func (s *Source) Load(name string) (*dataframe.Frame, error) {
	var (
		frame *dataframe.Frame
		err   error
	)
	switch s.kind {
	case KindSQLite:
		frame, err = loadSQLiteTable(s.path, name)
	case KindExcel:
		frame, err = loadExcelSheet(s.path, name)
	case KindCSV:
		frame, err = loadCSV(s.path)
	}
	if err != nil {
		return nil, &TableLoadError{Table: name, Err: err}
	}
	return frame, nil
}
