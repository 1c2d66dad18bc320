package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tably/tably/internal/ui/theme"
)

// TableSelectedMsg is sent when the user picks a table from the list
type TableSelectedMsg struct {
	Table string
}

// TableList is the left panel listing the tables (or sheets) of the
// open source.
type TableList struct {
	Tables  []string
	Current string
	Width   int
	Height  int
	Theme   theme.Theme

	selected int
	offset   int
}

// NewTableList creates a new table list
func NewTableList(th theme.Theme) *TableList {
	return &TableList{Theme: th}
}

// SetTables replaces the listed tables and resets the cursor
func (tl *TableList) SetTables(tables []string) {
	tl.Tables = tables
	tl.selected = 0
	tl.offset = 0
}

// Update handles keyboard input while the list is focused
func (tl *TableList) Update(msg tea.KeyMsg) (*TableList, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if tl.selected > 0 {
			tl.selected--
			if tl.selected < tl.offset {
				tl.offset = tl.selected
			}
		}
	case "down", "j":
		if tl.selected < len(tl.Tables)-1 {
			tl.selected++
			visible := tl.visibleLines()
			if tl.selected >= tl.offset+visible {
				tl.offset = tl.selected - visible + 1
			}
		}
	case "enter":
		if tl.selected < len(tl.Tables) {
			table := tl.Tables[tl.selected]
			return tl, func() tea.Msg {
				return TableSelectedMsg{Table: table}
			}
		}
	}
	return tl, nil
}

func (tl *TableList) visibleLines() int {
	v := tl.Height - 2
	if v < 1 {
		v = 1
	}
	return v
}

// View renders the list
func (tl *TableList) View() string {
	if len(tl.Tables) == 0 {
		return lipgloss.NewStyle().Foreground(tl.Theme.Metadata).Render("No tables")
	}

	iconStyle := lipgloss.NewStyle().Foreground(tl.Theme.TableIcon)
	cursorStyle := lipgloss.NewStyle().
		Background(tl.Theme.Selection).
		Bold(true)
	currentStyle := lipgloss.NewStyle().Foreground(tl.Theme.Success)

	var b strings.Builder
	visible := tl.visibleLines()
	end := tl.offset + visible
	if end > len(tl.Tables) {
		end = len(tl.Tables)
	}
	for i := tl.offset; i < end; i++ {
		name := tl.Tables[i]
		line := iconStyle.Render("▦ ") + name
		if name == tl.Current {
			line = iconStyle.Render("▦ ") + currentStyle.Render(name)
		}
		if i == tl.selected {
			line = cursorStyle.Render("▦ " + name)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
