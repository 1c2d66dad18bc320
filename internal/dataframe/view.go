package dataframe

import (
	"sort"
	"strings"

	"github.com/tably/tably/internal/loader"
)

// ViewKey is the exact input tuple a filtered/sorted view is derived
// from. Two equal keys always yield the same ordered row sequence,
// which is what makes the one-entry memo in the session safe.
type ViewKey struct {
	Table      string
	SortColumn string // empty means source order
	Ascending  bool   // meaningless when SortColumn is empty
	Query      string // case-insensitive substring, empty means all rows
}

// Sorted reports whether the key orders rows by a column.
func (k ViewKey) Sorted() bool { return k.SortColumn != "" }

// View is a filtered and sorted projection over a frame. It stores row
// indices only; cell data stays in the frame.
type View struct {
	Key   ViewKey
	Frame *Frame
	rows  []int
}

// Page is one slice of a view, ready for display.
type Page struct {
	Columns    []string
	Rows       [][]Value
	Number     int // 1-based
	Size       int
	TotalRows  int
	TotalPages int
}

// Apply derives the view for key over f: filter first, then a stable
// sort of the narrowed set. Search and sort compose; ties keep the
// filtered order.
func Apply(f *Frame, key ViewKey) *View {
	rows := make([]int, 0, f.NumRows())
	if q := strings.ToLower(key.Query); q != "" {
		for i := 0; i < f.NumRows(); i++ {
			if rowMatches(f.Row(i), q) {
				rows = append(rows, i)
			}
		}
	} else {
		for i := 0; i < f.NumRows(); i++ {
			rows = append(rows, i)
		}
	}

	if col := f.ColumnIndex(key.SortColumn); key.Sorted() && col >= 0 {
		kind := f.Kinds()[col]
		sort.SliceStable(rows, func(a, b int) bool {
			cmp := compareValues(f.Row(rows[a])[col], f.Row(rows[b])[col], kind)
			if key.Ascending {
				return cmp < 0
			}
			return cmp > 0
		})
	}
	return &View{Key: key, Frame: f, rows: rows}
}

// rowMatches reports whether any cell's text contains the lowercased
// query as a substring.
func rowMatches(row []Value, lowerQuery string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell.Text()), lowerQuery) {
			return true
		}
	}
	return false
}

// TotalRows returns the number of rows after filtering.
func (v *View) TotalRows() int { return len(v.rows) }

// TotalPages returns the page count for the given size, zero when the
// view is empty.
func (v *View) TotalPages(size int) int {
	if size <= 0 {
		return 0
	}
	return (len(v.rows) + size - 1) / size
}

// RowIndices returns the frame row indices in view order. The slice is
// shared; callers must not modify it.
func (v *View) RowIndices() []int { return v.rows }

// Page materializes page number (1-based) of the view. An out-of-range
// page yields an empty page, not an error; wrap-around is the
// caller's business. The token is checked per row so a superseded load
// aborts mid-materialization instead of completing a stale render.
func (v *View) Page(number, size int, tok *loader.Token) (Page, error) {
	p := Page{
		Columns:    v.Frame.Columns(),
		Number:     number,
		Size:       size,
		TotalRows:  len(v.rows),
		TotalPages: v.TotalPages(size),
	}
	if size <= 0 || number < 1 {
		return p, nil
	}
	start := (number - 1) * size
	if start >= len(v.rows) {
		return p, nil
	}
	end := start + size
	if end > len(v.rows) {
		end = len(v.rows)
	}
	p.Rows = make([][]Value, 0, end-start)
	for _, idx := range v.rows[start:end] {
		if tok.Stale() {
			return Page{}, loader.ErrSuperseded
		}
		p.Rows = append(p.Rows, v.Frame.Row(idx))
	}
	return p, nil
}
