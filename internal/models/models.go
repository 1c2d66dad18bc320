package models

// PanelType identifies which panel is focused
type PanelType int

const (
	LeftPanel PanelType = iota
	RightPanel
)

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	SearchMode
	PickerMode
	ResultsMode
)

// PageSizes are the selectable items-per-page options, cycled in
// order.
var PageSizes = []int{5, 10, 25, 50, 100, 250, 500, 1000}

// DefaultPageSize is used until the config or the user says otherwise.
const DefaultPageSize = 250

// ViewState is the current sort/search/pagination configuration for
// the active table. It resets to defaults whenever the active table
// changes.
type ViewState struct {
	Table      string
	SortColumn string // empty means unsorted
	Ascending  bool
	Query      string // empty means no filter
	Page       int    // 1-based
	PageSize   int
}

// NewViewState returns the default view state for a table.
func NewViewState(table string, pageSize int) ViewState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return ViewState{Table: table, Page: 1, PageSize: pageSize}
}

// CycleSort advances the sort state for a column activation: a new
// column starts ascending; the same column cycles ascending →
// descending → unsorted. Any change resets to page 1.
func (vs *ViewState) CycleSort(column string) {
	if vs.SortColumn == column {
		if vs.Ascending {
			vs.Ascending = false
		} else {
			vs.SortColumn = ""
			vs.Ascending = false
		}
	} else {
		vs.SortColumn = column
		vs.Ascending = true
	}
	vs.Page = 1
}

// SetQuery applies a search query and resets to page 1.
func (vs *ViewState) SetQuery(query string) {
	vs.Query = query
	vs.Page = 1
}

// SetPageSize changes the page size and resets to page 1.
func (vs *ViewState) SetPageSize(size int) {
	vs.PageSize = size
	vs.Page = 1
}

// Advance moves forward (+1) or back (-1), wrapping past either end
// when there is more than one page.
func (vs *ViewState) Advance(delta, totalPages int) {
	if totalPages <= 1 {
		vs.Page = 1
		return
	}
	vs.Page = ((vs.Page-1+delta)%totalPages+totalPages)%totalPages + 1
}

// NextPageSize returns the next items-per-page option after the
// current one, wrapping around the list.
func NextPageSize(current int) int {
	for i, size := range PageSizes {
		if size == current {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return DefaultPageSize
}

// ColumnLayout is per-table display state: column order and widths,
// keyed by table name in the session's layout map. Zero value means
// defaults.
type ColumnLayout struct {
	Order  []int
	Widths map[string]int
}
