package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/tably/tably/internal/ui/theme"
)

// TableView displays one page of table data with a row and column
// cursor, row selection, and a sort indicator on the sorted column.
type TableView struct {
	Columns []string
	Rows    [][]string
	Width   int
	Height  int
	Theme   theme.Theme

	// Cursor state
	SelectedRow int
	SelectedCol int
	TopRow      int
	VisibleRows int

	// Sort indicator
	SortColumn    string
	SortAscending bool

	// Page status
	PageNumber int
	TotalPages int
	TotalRows  int
	PageSize   int

	// Selected page rows, by page-local index
	selection map[int]bool

	// Cell rendering
	MaxCellLength int

	// Column widths (calculated)
	ColumnWidths []int
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{
		Columns:       []string{},
		Rows:          [][]string{},
		Theme:         th,
		MaxCellLength: 50,
		selection:     make(map[int]bool),
		ColumnWidths:  []int{},
	}
}

// SetPage sets the current page data and resets the cursor and row
// selection to fit it.
func (tv *TableView) SetPage(columns []string, rows [][]string, pageNumber, totalPages, totalRows, pageSize int) {
	tv.Columns = columns
	tv.Rows = rows
	tv.PageNumber = pageNumber
	tv.TotalPages = totalPages
	tv.TotalRows = totalRows
	tv.PageSize = pageSize
	tv.selection = make(map[int]bool)
	if tv.SelectedRow >= len(rows) {
		tv.SelectedRow = 0
		tv.TopRow = 0
	}
	if tv.SelectedCol >= len(columns) {
		tv.SelectedCol = 0
	}
	tv.calculateColumnWidths()
}

// SetSort sets which column shows the sort indicator. An empty name
// clears it.
func (tv *TableView) SetSort(column string, ascending bool) {
	tv.SortColumn = column
	tv.SortAscending = ascending
	tv.calculateColumnWidths()
}

// CurrentColumn returns the name of the column under the cursor, or ""
// when there is no data.
func (tv *TableView) CurrentColumn() string {
	if tv.SelectedCol < 0 || tv.SelectedCol >= len(tv.Columns) {
		return ""
	}
	return tv.Columns[tv.SelectedCol]
}

// ToggleRowSelection toggles selection of the row under the cursor.
func (tv *TableView) ToggleRowSelection() {
	if tv.SelectedRow < 0 || tv.SelectedRow >= len(tv.Rows) {
		return
	}
	if tv.selection[tv.SelectedRow] {
		delete(tv.selection, tv.SelectedRow)
	} else {
		tv.selection[tv.SelectedRow] = true
	}
}

// SelectAll selects every row on the current page.
func (tv *TableView) SelectAll() {
	for i := range tv.Rows {
		tv.selection[i] = true
	}
}

// ClearSelection drops all row selections.
func (tv *TableView) ClearSelection() {
	tv.selection = make(map[int]bool)
}

// SelectedRows returns the selected rows in page order. With no
// explicit selection it returns the row under the cursor.
func (tv *TableView) SelectedRows() [][]string {
	if len(tv.selection) == 0 {
		if tv.SelectedRow >= 0 && tv.SelectedRow < len(tv.Rows) {
			return [][]string{tv.Rows[tv.SelectedRow]}
		}
		return nil
	}
	var rows [][]string
	for i, row := range tv.Rows {
		if tv.selection[i] {
			rows = append(rows, row)
		}
	}
	return rows
}

// calculateColumnWidths calculates column widths from headers and data
func (tv *TableView) calculateColumnWidths() {
	if len(tv.Columns) == 0 {
		return
	}

	tv.ColumnWidths = make([]int, len(tv.Columns))
	for i, col := range tv.Columns {
		w := runewidth.StringWidth(col) + 2 // room for sort indicator
		tv.ColumnWidths[i] = w
	}
	for _, row := range tv.Rows {
		for i, cell := range row {
			if i >= len(tv.ColumnWidths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > tv.ColumnWidths[i] {
				tv.ColumnWidths[i] = w
			}
		}
	}

	maxWidth := tv.MaxCellLength
	if maxWidth < 10 {
		maxWidth = 10
	}
	for i := range tv.ColumnWidths {
		if tv.ColumnWidths[i] > maxWidth {
			tv.ColumnWidths[i] = maxWidth
		}
		if tv.ColumnWidths[i] < 6 {
			tv.ColumnWidths[i] = 6
		}
	}
}

// ApplyWidths overrides the calculated width of named columns, used to
// restore a saved layout.
func (tv *TableView) ApplyWidths(widths map[string]int) {
	if len(widths) == 0 {
		return
	}
	for i, col := range tv.Columns {
		if w, ok := widths[col]; ok && w > 0 && i < len(tv.ColumnWidths) {
			tv.ColumnWidths[i] = w
		}
	}
}

// CurrentWidths snapshots the column widths keyed by column name.
func (tv *TableView) CurrentWidths() map[string]int {
	widths := make(map[string]int, len(tv.Columns))
	for i, col := range tv.Columns {
		if i < len(tv.ColumnWidths) {
			widths[col] = tv.ColumnWidths[i]
		}
	}
	return widths
}

// ResetWidths recalculates widths from the current page data.
func (tv *TableView) ResetWidths() {
	tv.calculateColumnWidths()
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(tv.Theme.Metadata).Render("No data")
	}

	var b strings.Builder

	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())
	b.WriteString("\n")

	tv.VisibleRows = tv.Height - 3 // Header + separator + status
	if tv.VisibleRows < 1 {
		tv.VisibleRows = 1
	}

	endRow := tv.TopRow + tv.VisibleRows
	if endRow > len(tv.Rows) {
		endRow = len(tv.Rows)
	}
	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString(tv.renderRow(i))
		b.WriteString("\n")
	}

	b.WriteString(tv.renderStatus())
	return b.String()
}

func (tv *TableView) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader)
	cursorStyle := headerStyle.Underline(true)
	indicatorStyle := lipgloss.NewStyle().Foreground(tv.Theme.SortIndicator).Bold(true)

	var parts []string
	for i, col := range tv.Columns {
		label := col
		if col == tv.SortColumn {
			if tv.SortAscending {
				label += " ▲"
			} else {
				label += " ▼"
			}
		}
		cell := tv.pad(label, tv.ColumnWidths[i])
		switch {
		case i == tv.SelectedCol:
			cell = cursorStyle.Render(cell)
		case col == tv.SortColumn:
			cell = indicatorStyle.Render(cell)
		default:
			cell = headerStyle.Render(cell)
		}
		parts = append(parts, cell)
	}
	return " " + strings.Join(parts, " │ ") + " "
}

func (tv *TableView) renderSeparator() string {
	var parts []string
	for _, width := range tv.ColumnWidths {
		parts = append(parts, strings.Repeat("─", width))
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Border).
		Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(idx int) string {
	row := tv.Rows[idx]
	nullStyle := lipgloss.NewStyle().Foreground(tv.Theme.NullCell)

	var parts []string
	for i, cell := range row {
		if i >= len(tv.ColumnWidths) {
			break
		}
		padded := tv.pad(cell, tv.ColumnWidths[i])
		if cell == "" {
			padded = nullStyle.Render(padded)
		}
		parts = append(parts, padded)
	}
	line := " " + strings.Join(parts, " │ ") + " "

	cursor := idx == tv.SelectedRow
	marked := tv.selection[idx]
	switch {
	case cursor:
		return lipgloss.NewStyle().
			Background(tv.Theme.TableRowSelected).
			Bold(true).
			Render(line)
	case marked:
		return lipgloss.NewStyle().
			Background(tv.Theme.Selection).
			Render(line)
	}
	return line
}

func (tv *TableView) renderStatus() string {
	status := fmt.Sprintf(" page %d/%d │ %d rows │ page size %d",
		tv.PageNumber, max(tv.TotalPages, 1), tv.TotalRows, tv.PageSize)
	if n := len(tv.selection); n > 0 {
		status += fmt.Sprintf(" │ %d selected", n)
	}
	return lipgloss.NewStyle().
		Foreground(tv.Theme.Metadata).
		Italic(true).
		Render(status)
}

func (tv *TableView) pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// MoveSelection moves the row cursor up or down
func (tv *TableView) MoveSelection(delta int) {
	tv.SelectedRow += delta
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.SelectedRow >= len(tv.Rows) {
		tv.SelectedRow = len(tv.Rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}

	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// MoveColumn moves the column cursor left or right
func (tv *TableView) MoveColumn(delta int) {
	tv.SelectedCol += delta
	if tv.SelectedCol < 0 {
		tv.SelectedCol = 0
	}
	if tv.SelectedCol >= len(tv.Columns) {
		tv.SelectedCol = len(tv.Columns) - 1
	}
	if tv.SelectedCol < 0 {
		tv.SelectedCol = 0
	}
}

// JumpToRow moves the cursor to a page-local row
func (tv *TableView) JumpToRow(idx int) {
	tv.SelectedRow = 0
	tv.MoveSelection(idx)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
