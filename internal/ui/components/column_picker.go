package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tably/tably/internal/ui/theme"
)

// ColumnsPickedMsg is sent when the user confirms a column selection
type ColumnsPickedMsg struct {
	Columns []string
}

// CloseColumnPickerMsg is sent when the picker is dismissed
type CloseColumnPickerMsg struct{}

// ColumnPicker is a multi-select dialog over column names, used to
// choose the inputs of an analysis.
type ColumnPicker struct {
	Title  string
	Width  int
	Height int
	Theme  theme.Theme

	// MinColumns/MaxColumns bound how many columns may be confirmed.
	// MaxColumns zero means unbounded.
	MinColumns int
	MaxColumns int

	columns  []string
	checked  map[int]bool
	selected int
	offset   int
}

// NewColumnPicker creates a new column picker
func NewColumnPicker(th theme.Theme) *ColumnPicker {
	return &ColumnPicker{
		Width:      60,
		Height:     20,
		Theme:      th,
		MinColumns: 1,
		checked:    make(map[int]bool),
	}
}

// SetColumns sets the pickable columns and clears the selection
func (cp *ColumnPicker) SetColumns(title string, columns []string, minCols, maxCols int) {
	cp.Title = title
	cp.columns = columns
	cp.MinColumns = minCols
	cp.MaxColumns = maxCols
	cp.checked = make(map[int]bool)
	cp.selected = 0
	cp.offset = 0
}

// Picked returns the checked column names in list order
func (cp *ColumnPicker) Picked() []string {
	var out []string
	for i, c := range cp.columns {
		if cp.checked[i] {
			out = append(out, c)
		}
	}
	return out
}

// Update handles keyboard input
func (cp *ColumnPicker) Update(msg tea.KeyMsg) (*ColumnPicker, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return cp, func() tea.Msg {
			return CloseColumnPickerMsg{}
		}
	case "up", "k":
		if cp.selected > 0 {
			cp.selected--
			if cp.selected < cp.offset {
				cp.offset = cp.selected
			}
		}
	case "down", "j":
		if cp.selected < len(cp.columns)-1 {
			cp.selected++
			visible := cp.visibleLines()
			if cp.selected >= cp.offset+visible {
				cp.offset = cp.selected - visible + 1
			}
		}
	case " ", "v":
		if cp.checked[cp.selected] {
			delete(cp.checked, cp.selected)
		} else if cp.MaxColumns == 0 || len(cp.checked) < cp.MaxColumns {
			cp.checked[cp.selected] = true
		}
	case "a":
		if cp.MaxColumns == 0 || len(cp.columns) <= cp.MaxColumns {
			for i := range cp.columns {
				cp.checked[i] = true
			}
		}
	case "enter":
		picked := cp.Picked()
		if len(picked) < cp.MinColumns {
			return cp, nil
		}
		return cp, func() tea.Msg {
			return ColumnsPickedMsg{Columns: picked}
		}
	}
	return cp, nil
}

func (cp *ColumnPicker) visibleLines() int {
	v := cp.Height - 6
	if v < 1 {
		v = 1
	}
	return v
}

// View renders the picker dialog
func (cp *ColumnPicker) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(cp.Theme.Info)
	cursorStyle := lipgloss.NewStyle().
		Background(cp.Theme.Selection).
		Bold(true)
	checkedStyle := lipgloss.NewStyle().Foreground(cp.Theme.Success)
	helpStyle := lipgloss.NewStyle().
		Foreground(cp.Theme.Metadata).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(cp.Title))
	b.WriteString("\n\n")

	if len(cp.columns) == 0 {
		b.WriteString(helpStyle.Render("No eligible columns"))
	}

	visible := cp.visibleLines()
	end := cp.offset + visible
	if end > len(cp.columns) {
		end = len(cp.columns)
	}
	for i := cp.offset; i < end; i++ {
		mark := "[ ]"
		line := fmt.Sprintf("%s %s", mark, cp.columns[i])
		if cp.checked[i] {
			line = checkedStyle.Render(fmt.Sprintf("[x] %s", cp.columns[i]))
		}
		if i == cp.selected {
			line = cursorStyle.Render(fmt.Sprintf("[%s] %s", map[bool]string{true: "x", false: " "}[cp.checked[i]], cp.columns[i]))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	constraint := fmt.Sprintf("pick at least %d", cp.MinColumns)
	if cp.MaxColumns > 0 {
		constraint = fmt.Sprintf("pick %d-%d", cp.MinColumns, cp.MaxColumns)
		if cp.MinColumns == cp.MaxColumns {
			constraint = fmt.Sprintf("pick exactly %d", cp.MinColumns)
		}
	}
	b.WriteString(helpStyle.Render("Space: toggle │ Enter: confirm (" + constraint + ") │ Esc: cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cp.Theme.BorderFocused).
		Padding(1, 2).
		Width(cp.Width)

	return boxStyle.Render(b.String())
}
