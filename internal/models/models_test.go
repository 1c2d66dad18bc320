package models

import "testing"

func TestSortCycle(t *testing.T) {
	vs := NewViewState("t", 100)

	// First activation: ascending.
	vs.CycleSort("age")
	if vs.SortColumn != "age" || !vs.Ascending {
		t.Errorf("First click should sort ascending, got %q asc=%v", vs.SortColumn, vs.Ascending)
	}

	// Second: descending.
	vs.CycleSort("age")
	if vs.SortColumn != "age" || vs.Ascending {
		t.Errorf("Second click should sort descending, got %q asc=%v", vs.SortColumn, vs.Ascending)
	}

	// Third: back to unsorted, not ascending again.
	vs.CycleSort("age")
	if vs.SortColumn != "" {
		t.Errorf("Third click should clear the sort, got %q", vs.SortColumn)
	}
}

func TestSortSwitchingColumnsStartsAscending(t *testing.T) {
	vs := NewViewState("t", 100)
	vs.CycleSort("a")
	vs.CycleSort("a") // descending on a
	vs.CycleSort("b")
	if vs.SortColumn != "b" || !vs.Ascending {
		t.Errorf("Switching columns should start ascending, got %q asc=%v", vs.SortColumn, vs.Ascending)
	}
}

func TestSortResetsPage(t *testing.T) {
	vs := NewViewState("t", 100)
	vs.Page = 5
	vs.CycleSort("a")
	if vs.Page != 1 {
		t.Errorf("Sorting should reset to page 1, got %d", vs.Page)
	}
}

func TestPageWrap(t *testing.T) {
	vs := NewViewState("t", 100)
	total := 4

	// Next from the last page wraps to 1.
	vs.Page = 4
	vs.Advance(1, total)
	if vs.Page != 1 {
		t.Errorf("Next from last page should wrap to 1, got %d", vs.Page)
	}

	// Previous from page 1 wraps to the last page.
	vs.Advance(-1, total)
	if vs.Page != 4 {
		t.Errorf("Previous from page 1 should wrap to %d, got %d", total, vs.Page)
	}

	// Normal forward step.
	vs.Page = 2
	vs.Advance(1, total)
	if vs.Page != 3 {
		t.Errorf("Expected page 3, got %d", vs.Page)
	}
}

func TestAdvanceSinglePage(t *testing.T) {
	vs := NewViewState("t", 100)
	vs.Advance(1, 1)
	if vs.Page != 1 {
		t.Errorf("Single page should pin to 1, got %d", vs.Page)
	}
	vs.Advance(-1, 0)
	if vs.Page != 1 {
		t.Errorf("Zero pages should pin to 1, got %d", vs.Page)
	}
}

func TestNextPageSize(t *testing.T) {
	if got := NextPageSize(250); got != 500 {
		t.Errorf("After 250 expected 500, got %d", got)
	}
	if got := NextPageSize(1000); got != 5 {
		t.Errorf("After 1000 expected wrap to 5, got %d", got)
	}
	if got := NextPageSize(7); got != DefaultPageSize {
		t.Errorf("Unknown size should fall back to default, got %d", got)
	}
}

func TestSetQueryAndPageSizeResetPage(t *testing.T) {
	vs := NewViewState("t", 100)
	vs.Page = 3
	vs.SetQuery("abc")
	if vs.Page != 1 || vs.Query != "abc" {
		t.Errorf("SetQuery should reset page, got page=%d query=%q", vs.Page, vs.Query)
	}
	vs.Page = 3
	vs.SetPageSize(50)
	if vs.Page != 1 || vs.PageSize != 50 {
		t.Errorf("SetPageSize should reset page, got page=%d size=%d", vs.Page, vs.PageSize)
	}
}
