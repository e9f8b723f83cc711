package editor

import "github.com/charmbracelet/lipgloss"

// Styles controls rendering of display lines. Runs maps the style keys
// carried by inserted runs to styles; keys with no entry fall back to
// Text. Selection and Cursor are overlaid on top of the run style.
type Styles struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style

	Runs map[string]lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Text:        lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Runs:        map[string]lipgloss.Style{},
	}
}

// run resolves a style key to its configured style.
func (s Styles) run(key string) lipgloss.Style {
	if st, ok := s.Runs[key]; ok {
		return st
	}
	return s.Text
}

// selected layers the selection background over the run style.
func (s Styles) selected(key string) lipgloss.Style {
	return s.Selection.Inherit(s.run(key))
}
