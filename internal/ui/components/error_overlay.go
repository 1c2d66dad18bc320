package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tably/tably/internal/ui/theme"
)

// ErrorOverlay shows a dismissible error box over the main view.
type ErrorOverlay struct {
	Title   string
	Message string
	Width   int
	Theme   theme.Theme
	Visible bool
}

// NewErrorOverlay creates a new error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{Width: 60, Theme: th}
}

// SetError fills and shows the overlay
func (eo *ErrorOverlay) SetError(title, message string) {
	eo.Title = title
	eo.Message = message
	eo.Visible = true
}

// Clear hides the overlay
func (eo *ErrorOverlay) Clear() {
	eo.Visible = false
	eo.Title = ""
	eo.Message = ""
}

// View renders the overlay
func (eo *ErrorOverlay) View() string {
	if !eo.Visible {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(eo.Theme.Error)
	msgStyle := lipgloss.NewStyle().
		Foreground(eo.Theme.Foreground)
	helpStyle := lipgloss.NewStyle().
		Foreground(eo.Theme.Metadata).
		Italic(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(eo.Theme.Error).
		Padding(1, 2).
		Width(eo.Width)

	content := titleStyle.Render(eo.Title) + "\n\n" +
		msgStyle.Render(eo.Message) + "\n\n" +
		helpStyle.Render("Esc/Enter: dismiss")
	return boxStyle.Render(content)
}
