package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tably/tably/internal/ui/theme"
)

// SearchInputMsg is sent when search should be executed
type SearchInputMsg struct {
	Query string
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchInput provides the all-column substring search box
type SearchInput struct {
	Input   textinput.Model
	Theme   theme.Theme
	Width   int
	Visible bool
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search all columns..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchInput{
		Input: ti,
		Theme: th,
	}
}

// Reset clears the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			// An empty query clears the filter; both are searches.
			query := s.Input.Value()
			return s, func() tea.Msg {
				return SearchInputMsg{Query: query}
			}
		case "esc":
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	inputWidth := s.Width - 12
	if inputWidth < 20 {
		inputWidth = 20
	}
	s.Input.Width = inputWidth

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(s.Width)

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Metadata).
		Italic(true)

	content := "🔍 " + s.Input.View()
	helpText := helpStyle.Render("Enter: search (empty clears) │ Esc: close")

	return boxStyle.Render(content + "\n" + helpText)
}
