package help

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error or overlay"},
		{"Tab", "Switch panel focus"},
		{"o", "Open a file"},
		{"r, F5", "Reload current table"},
	}
}

// GetNavigationKeys returns navigation key bindings
func GetNavigationKeys() []KeyBinding {
	return []KeyBinding{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"←/h", "Move left one column"},
		{"→/l", "Move right one column"},
		{"Enter", "Select table"},
		{"g/G", "Jump to first/last row on page"},
	}
}

// GetDataViewKeys returns data view key bindings
func GetDataViewKeys() []KeyBinding {
	return []KeyBinding{
		{"/", "Search all columns"},
		{"s", "Cycle sort on column (asc/desc/off)"},
		{"n", "Next page"},
		{"p", "Previous page"},
		{"z", "Cycle page size"},
		{"v", "Toggle row selection"},
		{"a", "Select all rows on page"},
		{"c", "Copy selected rows (TSV)"},
		{"e/E", "Export view as CSV / JSON"},
		{"w", "Save column layout"},
		{"W", "Reset column layout"},
	}
}

// GetAnalysisKeys returns analysis key bindings
func GetAnalysisKeys() []KeyBinding {
	return []KeyBinding{
		{"d", "Open analysis menu"},
		{"1", "Describe columns"},
		{"2", "Histogram"},
		{"3", "Scatter plot"},
		{"4", "Correlation matrix"},
		{"5", "Best distribution fit (AIC)"},
		{"6", "Linear regression"},
		{"7", "One-way ANOVA"},
	}
}

// Render creates the help view
func Render(width, height int, theme lipgloss.Style) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62")).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("75")).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var b strings.Builder

	// Title
	b.WriteString(titleStyle.Render("tably - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name string
		keys []KeyBinding
	}{
		{"Global", GetGlobalKeys()},
		{"Navigation", GetNavigationKeys()},
		{"Data View", GetDataViewKeys()},
		{"Analysis", GetAnalysisKeys()},
	}
	for _, s := range sections {
		b.WriteString(sectionStyle.Render(s.name))
		b.WriteString("\n")
		for _, kb := range s.keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(width - 4).
		Height(height - 4)

	return boxStyle.Render(b.String())
}
