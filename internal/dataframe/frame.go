package dataframe

import "fmt"

// Frame is an immutable columnar snapshot of one table, sheet, or CSV
// file: ordered column names with a kind per column, and row-major
// typed cells. A frame is loaded eagerly and never mutated; views over
// it are derived (see view.go).
type Frame struct {
	columns []string
	kinds   []Kind
	rows    [][]Value
}

// Columns returns the column names in source order.
func (f *Frame) Columns() []string { return f.columns }

// Kinds returns the inferred kind per column, aligned with Columns.
func (f *Frame) Kinds() []Kind { return f.kinds }

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return len(f.rows) }

// NumColumns returns the number of columns.
func (f *Frame) NumColumns() int { return len(f.columns) }

// Row returns row i. The slice is shared; callers must not modify it.
func (f *Frame) Row(i int) []Value { return f.rows[i] }

// ColumnIndex returns the index of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// NumericColumns returns the names of columns usable as analysis
// input: numbers and timestamps, matching the numeric-only column
// picker.
func (f *Frame) NumericColumns() []string {
	var names []string
	for i, k := range f.kinds {
		if k == KindNumber || k == KindTime {
			names = append(names, f.columns[i])
		}
	}
	return names
}

// FloatColumn extracts the named column as float64s, skipping nulls
// and non-convertible cells. Timestamps convert to Unix seconds.
func (f *Frame) FloatColumn(name string) ([]float64, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("no such column %q", name)
	}
	out := make([]float64, 0, len(f.rows))
	for _, row := range f.rows {
		if v, ok := row[idx].Float(); ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// TextColumn extracts the named column's non-null cells as display
// text, the input shape for categorical summaries.
func (f *Frame) TextColumn(name string) ([]string, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("no such column %q", name)
	}
	out := make([]string, 0, len(f.rows))
	for _, row := range f.rows {
		if row[idx].IsNull() {
			continue
		}
		out = append(out, row[idx].Text())
	}
	return out, nil
}

// FloatColumns extracts several columns row-aligned: only rows where
// every requested column converts are kept, so the slices share an
// index. Used by scatter, correlation, and regression input.
func (f *Frame) FloatColumns(names []string) ([][]float64, error) {
	idxs := make([]int, len(names))
	for i, name := range names {
		idx := f.ColumnIndex(name)
		if idx < 0 {
			return nil, fmt.Errorf("no such column %q", name)
		}
		idxs[i] = idx
	}
	out := make([][]float64, len(names))
	vals := make([]float64, len(names))
	for _, row := range f.rows {
		ok := true
		for i, idx := range idxs {
			v, convertible := row[idx].Float()
			if !convertible {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		for i := range out {
			out[i] = append(out[i], vals[i])
		}
	}
	return out, nil
}

// NewFrameFromStrings builds a frame from raw text rows (CSV and Excel
// input). Column kinds are inferred once over all cells; a column
// whose cells disagree stays text. Short rows are padded with nulls,
// long rows truncated to the header width.
func NewFrameFromStrings(columns []string, rows [][]string) *Frame {
	kinds := make([]Kind, len(columns))
	colCells := make([]string, 0, len(rows))
	for c := range columns {
		colCells = colCells[:0]
		for _, row := range rows {
			if c < len(row) {
				colCells = append(colCells, row[c])
			}
		}
		kinds[c] = inferKind(colCells)
	}

	typed := make([][]Value, len(rows))
	for r, row := range rows {
		cells := make([]Value, len(columns))
		for c := range columns {
			if c < len(row) {
				cells[c] = parseCell(row[c], kinds[c])
			} else {
				cells[c] = Null()
			}
		}
		typed[r] = cells
	}
	return &Frame{columns: columns, kinds: kinds, rows: typed}
}

// NewFrameFromValues builds a frame from already-typed rows (SQLite
// input). The kind of each column is the single kind its non-null
// cells agree on; mixed columns degrade to text and keep their cells'
// own text rendering.
func NewFrameFromValues(columns []string, rows [][]Value) *Frame {
	kinds := make([]Kind, len(columns))
	for c := range columns {
		kind := KindText
		decided := false
		mixed := false
		for _, row := range rows {
			v := row[c]
			if v.IsNull() {
				continue
			}
			if !decided {
				kind = v.Kind()
				decided = true
			} else if v.Kind() != kind {
				mixed = true
				break
			}
		}
		if mixed {
			kind = KindText
		}
		kinds[c] = kind
	}
	return &Frame{columns: columns, kinds: kinds, rows: rows}
}
