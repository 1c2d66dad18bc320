package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tably/tably/internal/ui/theme"
)

// AnalysisKind identifies one statistical analysis.
type AnalysisKind int

const (
	AnalysisDescribe AnalysisKind = iota
	AnalysisHistogram
	AnalysisScatter
	AnalysisCorrelation
	AnalysisFit
	AnalysisRegression
	AnalysisANOVA
)

// String returns the menu label for the analysis.
func (k AnalysisKind) String() string {
	switch k {
	case AnalysisDescribe:
		return "Describe columns"
	case AnalysisHistogram:
		return "Histogram"
	case AnalysisScatter:
		return "Scatter plot"
	case AnalysisCorrelation:
		return "Correlation matrix"
	case AnalysisFit:
		return "Best distribution fit (AIC)"
	case AnalysisRegression:
		return "Linear regression"
	case AnalysisANOVA:
		return "One-way ANOVA"
	}
	return "unknown"
}

// AnalysisChosenMsg is sent when the user picks an analysis
type AnalysisChosenMsg struct {
	Kind AnalysisKind
}

// CloseAnalysisMenuMsg is sent when the menu is dismissed
type CloseAnalysisMenuMsg struct{}

// AnalysisMenu is the numbered menu of available analyses.
type AnalysisMenu struct {
	Width    int
	Theme    theme.Theme
	selected int
}

var analysisEntries = []AnalysisKind{
	AnalysisDescribe,
	AnalysisHistogram,
	AnalysisScatter,
	AnalysisCorrelation,
	AnalysisFit,
	AnalysisRegression,
	AnalysisANOVA,
}

// NewAnalysisMenu creates a new analysis menu
func NewAnalysisMenu(th theme.Theme) *AnalysisMenu {
	return &AnalysisMenu{Width: 44, Theme: th}
}

// Reset moves the cursor back to the first entry
func (am *AnalysisMenu) Reset() {
	am.selected = 0
}

// Update handles keyboard input
func (am *AnalysisMenu) Update(msg tea.KeyMsg) (*AnalysisMenu, tea.Cmd) {
	switch key := msg.String(); key {
	case "esc", "q", "d":
		return am, func() tea.Msg {
			return CloseAnalysisMenuMsg{}
		}
	case "up", "k":
		if am.selected > 0 {
			am.selected--
		}
	case "down", "j":
		if am.selected < len(analysisEntries)-1 {
			am.selected++
		}
	case "enter":
		kind := analysisEntries[am.selected]
		return am, func() tea.Msg {
			return AnalysisChosenMsg{Kind: kind}
		}
	case "1", "2", "3", "4", "5", "6", "7":
		kind := analysisEntries[int(key[0]-'1')]
		return am, func() tea.Msg {
			return AnalysisChosenMsg{Kind: kind}
		}
	}
	return am, nil
}

// View renders the menu
func (am *AnalysisMenu) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(am.Theme.Info)
	cursorStyle := lipgloss.NewStyle().
		Background(am.Theme.Selection).
		Bold(true)
	helpStyle := lipgloss.NewStyle().
		Foreground(am.Theme.Metadata).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Analyses"))
	b.WriteString("\n\n")
	for i, kind := range analysisEntries {
		line := fmt.Sprintf("%d. %s", i+1, kind)
		if i == am.selected {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-7/Enter: run │ Esc: close"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(am.Theme.BorderFocused).
		Padding(1, 2).
		Width(am.Width)

	return boxStyle.Render(b.String())
}
