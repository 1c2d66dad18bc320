package dataframe

import (
	"reflect"
	"testing"

	"github.com/tably/tably/internal/loader"
)

func testFrame() *Frame {
	return NewFrameFromStrings(
		[]string{"name", "value"},
		[][]string{
			{"a", "1"},
			{"b", "2"},
			{"c", "3"},
		},
	)
}

func rowTexts(rows [][]Value) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		texts := make([]string, len(row))
		for j, cell := range row {
			texts[j] = cell.Text()
		}
		out[i] = texts
	}
	return out
}

func TestPaginationScenario(t *testing.T) {
	// [["a",1],["b",2],["c",3]] with page_size=2
	view := Apply(testFrame(), ViewKey{Table: "t"})

	page1, err := view.Page(1, 2, nil)
	if err != nil {
		t.Fatalf("Page(1) failed: %v", err)
	}
	if page1.TotalPages != 2 {
		t.Errorf("Expected 2 total pages, got %d", page1.TotalPages)
	}
	want1 := [][]string{{"a", "1"}, {"b", "2"}}
	if got := rowTexts(page1.Rows); !reflect.DeepEqual(got, want1) {
		t.Errorf("Page 1 mismatch.\nExpected: %v\nGot: %v", want1, got)
	}

	page2, err := view.Page(2, 2, nil)
	if err != nil {
		t.Fatalf("Page(2) failed: %v", err)
	}
	want2 := [][]string{{"c", "3"}}
	if got := rowTexts(page2.Rows); !reflect.DeepEqual(got, want2) {
		t.Errorf("Page 2 mismatch.\nExpected: %v\nGot: %v", want2, got)
	}
}

func TestSearchScenario(t *testing.T) {
	view := Apply(testFrame(), ViewKey{Table: "t", Query: "b"})
	if view.TotalRows() != 1 {
		t.Fatalf("Expected 1 matching row, got %d", view.TotalRows())
	}
	page, err := view.Page(1, 10, nil)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	want := [][]string{{"b", "2"}}
	if got := rowTexts(page.Rows); !reflect.DeepEqual(got, want) {
		t.Errorf("Filtered result mismatch.\nExpected: %v\nGot: %v", want, got)
	}
}

func TestSearchMatchesLargeIntegerLiteral(t *testing.T) {
	// Searching for the source text of a big integer must match the
	// cell; lossy rendering would make "1000000" unfindable.
	frame := NewFrameFromStrings(
		[]string{"id"},
		[][]string{{"1000000"}, {"2500000"}, {"17"}},
	)
	view := Apply(frame, ViewKey{Table: "t", Query: "1000000"})
	if view.TotalRows() != 1 {
		t.Fatalf("Expected 1 match for \"1000000\", got %d", view.TotalRows())
	}
	page, err := view.Page(1, 10, nil)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if got := page.Rows[0][0].Text(); got != "1000000" {
		t.Errorf("Matched row renders %q, expected \"1000000\"", got)
	}
}

func TestPagesReconstructView(t *testing.T) {
	// Concatenating all pages must reproduce the view exactly once per
	// row, for several page sizes.
	frame := NewFrameFromStrings(
		[]string{"n"},
		[][]string{{"5"}, {"3"}, {"9"}, {"1"}, {"7"}, {"2"}, {"8"}, {"4"}, {"6"}, {"0"}},
	)
	view := Apply(frame, ViewKey{Table: "t", SortColumn: "n", Ascending: true})

	full, err := view.Page(1, view.TotalRows(), nil)
	if err != nil {
		t.Fatalf("Full page failed: %v", err)
	}

	for _, size := range []int{1, 2, 3, 4, 7, 10, 25} {
		var got [][]Value
		for n := 1; n <= view.TotalPages(size); n++ {
			page, err := view.Page(n, size, nil)
			if err != nil {
				t.Fatalf("size %d page %d failed: %v", size, n, err)
			}
			got = append(got, page.Rows...)
		}
		if !reflect.DeepEqual(rowTexts(got), rowTexts(full.Rows)) {
			t.Errorf("size %d: concatenated pages do not reconstruct the view", size)
		}
	}
}

func TestDeterminism(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"a", "b"},
		[][]string{{"x", "2"}, {"y", "1"}, {"x", "1"}, {"z", "2"}},
	)
	key := ViewKey{Table: "t", SortColumn: "b", Ascending: true, Query: "x"}
	first := Apply(frame, key)
	second := Apply(frame, key)
	if !reflect.DeepEqual(first.RowIndices(), second.RowIndices()) {
		t.Errorf("Same key produced different row sequences: %v vs %v",
			first.RowIndices(), second.RowIndices())
	}
}

func TestSortStability(t *testing.T) {
	// Equal sort keys must keep the unsorted filtered order.
	frame := NewFrameFromStrings(
		[]string{"name", "group"},
		[][]string{
			{"first", "b"},
			{"second", "a"},
			{"third", "b"},
			{"fourth", "a"},
			{"fifth", "b"},
		},
	)
	view := Apply(frame, ViewKey{Table: "t", SortColumn: "group", Ascending: true})
	page, err := view.Page(1, 10, nil)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	want := [][]string{
		{"second", "a"},
		{"fourth", "a"},
		{"first", "b"},
		{"third", "b"},
		{"fifth", "b"},
	}
	if got := rowTexts(page.Rows); !reflect.DeepEqual(got, want) {
		t.Errorf("Stable sort order mismatch.\nExpected: %v\nGot: %v", want, got)
	}
}

func TestSearchNarrowing(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"city", "country"},
		[][]string{
			{"Berlin", "Germany"},
			{"Munich", "Germany"},
			{"Paris", "France"},
			{"Bern", "Switzerland"},
		},
	)

	// Case-insensitive: every surviving row contains the query somewhere.
	view := Apply(frame, ViewKey{Table: "t", Query: "GER"})
	if view.TotalRows() != 2 {
		t.Errorf("Expected 2 rows matching 'GER', got %d", view.TotalRows())
	}
	page, _ := view.Page(1, 10, nil)
	for _, row := range rowTexts(page.Rows) {
		if row[1] != "Germany" {
			t.Errorf("Row %v does not contain the query", row)
		}
	}

	// Empty query equals the unfiltered table.
	all := Apply(frame, ViewKey{Table: "t"})
	if all.TotalRows() != frame.NumRows() {
		t.Errorf("Empty query: expected %d rows, got %d", frame.NumRows(), all.TotalRows())
	}
}

func TestSearchAndSortCompose(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"name", "score"},
		[][]string{
			{"alpha", "30"},
			{"beta", "10"},
			{"alphabet", "20"},
			{"gamma", "5"},
		},
	)
	view := Apply(frame, ViewKey{Table: "t", SortColumn: "score", Ascending: true, Query: "alpha"})
	page, _ := view.Page(1, 10, nil)
	want := [][]string{{"alphabet", "20"}, {"alpha", "30"}}
	if got := rowTexts(page.Rows); !reflect.DeepEqual(got, want) {
		t.Errorf("Filter+sort mismatch.\nExpected: %v\nGot: %v", want, got)
	}
}

func TestDescendingAndNullOrder(t *testing.T) {
	frame := NewFrameFromStrings(
		[]string{"v"},
		[][]string{{"2"}, {""}, {"1"}, {"3"}},
	)

	asc := Apply(frame, ViewKey{Table: "t", SortColumn: "v", Ascending: true})
	pageAsc, _ := asc.Page(1, 10, nil)
	wantAsc := [][]string{{"1"}, {"2"}, {"3"}, {""}}
	if got := rowTexts(pageAsc.Rows); !reflect.DeepEqual(got, wantAsc) {
		t.Errorf("Ascending null order mismatch.\nExpected: %v\nGot: %v", wantAsc, got)
	}

	desc := Apply(frame, ViewKey{Table: "t", SortColumn: "v", Ascending: false})
	pageDesc, _ := desc.Page(1, 10, nil)
	wantDesc := [][]string{{""}, {"3"}, {"2"}, {"1"}}
	if got := rowTexts(pageDesc.Rows); !reflect.DeepEqual(got, wantDesc) {
		t.Errorf("Descending null order mismatch.\nExpected: %v\nGot: %v", wantDesc, got)
	}
}

func TestOutOfRangePageIsEmpty(t *testing.T) {
	view := Apply(testFrame(), ViewKey{Table: "t"})
	page, err := view.Page(99, 2, nil)
	if err != nil {
		t.Fatalf("Out-of-range page returned error: %v", err)
	}
	if len(page.Rows) != 0 {
		t.Errorf("Expected empty page, got %d rows", len(page.Rows))
	}
	if page.TotalRows != 3 || page.TotalPages != 2 {
		t.Errorf("Totals wrong on empty page: rows=%d pages=%d", page.TotalRows, page.TotalPages)
	}
}

func TestPageAbortsWhenSuperseded(t *testing.T) {
	coord := loader.NewCoordinator()
	tok := coord.Begin()
	coord.Begin() // supersede immediately

	view := Apply(testFrame(), ViewKey{Table: "t"})
	_, err := view.Page(1, 3, tok)
	if err != loader.ErrSuperseded {
		t.Fatalf("Expected ErrSuperseded, got %v", err)
	}
}
