package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/tably/tably/internal/ui/theme"
)

// CloseResultsMsg is sent when the results overlay is dismissed
type CloseResultsMsg struct{}

// ResultsView shows scrollable analysis output in an overlay.
type ResultsView struct {
	Title  string
	Width  int
	Height int
	Theme  theme.Theme

	viewport viewport.Model
}

// NewResultsView creates a new results overlay
func NewResultsView(th theme.Theme) *ResultsView {
	return &ResultsView{
		Width:    80,
		Height:   24,
		Theme:    th,
		viewport: viewport.New(76, 18),
	}
}

// SetContent fills the overlay and scrolls to the top
func (rv *ResultsView) SetContent(title, content string) {
	rv.Title = title
	rv.viewport.SetContent(content)
	rv.viewport.GotoTop()
}

// SetSize adjusts the overlay to the terminal size
func (rv *ResultsView) SetSize(width, height int) {
	rv.Width = width
	rv.Height = height
	rv.viewport.Width = width - 6
	rv.viewport.Height = height - 6
	if rv.viewport.Height < 3 {
		rv.viewport.Height = 3
	}
}

// Update handles scrolling and dismissal
func (rv *ResultsView) Update(msg tea.Msg) (*ResultsView, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "enter":
			return rv, func() tea.Msg {
				return CloseResultsMsg{}
			}
		}
	}
	var cmd tea.Cmd
	rv.viewport, cmd = rv.viewport.Update(msg)
	return rv, cmd
}

// View renders the overlay
func (rv *ResultsView) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(rv.Theme.Info)
	helpStyle := lipgloss.NewStyle().
		Foreground(rv.Theme.Metadata).
		Italic(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(rv.Theme.BorderFocused).
		Padding(1, 2).
		Width(rv.Width - 2)

	content := titleStyle.Render(rv.Title) + "\n\n" +
		rv.viewport.View() + "\n" +
		helpStyle.Render("↑↓: scroll │ Esc: close")
	return boxStyle.Render(content)
}
