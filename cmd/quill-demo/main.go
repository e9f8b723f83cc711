package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/quilltk/quill/editor"
)

type keyMap struct {
	Quit   key.Binding
	Submit key.Binding
	Undo   key.Binding
	Redo   key.Binding
	Select key.Binding
}

var keys = keyMap{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
	Undo:   key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
	Redo:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
	Select: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "toggle selection")),
}

type model struct {
	prompt     *editor.TextBuffer
	transcript *editor.TextBuffer
	view       viewport.Model
	selecting  bool
	width      int
}

func promptStyles() editor.Styles {
	s := editor.DefaultStyles()
	s.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	return s
}

func transcriptStyles() editor.Styles {
	s := editor.DefaultStyles()
	s.Runs = map[string]lipgloss.Style{
		"user":      lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		"assistant": lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
	return s
}

func newModel() model {
	prompt := editor.New(editor.Config{
		Width:       78,
		Editable:    true,
		Placeholder: "type a message, enter to send",
		Styles:      promptStyles(),
	})
	transcript := editor.New(editor.Config{
		Width:  78,
		Styles: transcriptStyles(),
	})
	transcript.Append("quill demo. Messages echo back below.\n", "assistant")

	return model{
		prompt:     prompt,
		transcript: transcript,
		view:       viewport.New(78, 16),
		width:      78,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.prompt.SetWidth(msg.Width - 2)
		m.transcript.SetWidth(msg.Width - 2)
		m.view.Width = msg.Width
		m.view.Height = msg.Height - m.prompt.LineCount() - 2
		m.syncTranscript()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Submit):
			m.submit()
			return m, nil
		case key.Matches(msg, keys.Undo):
			m.prompt.Undo()
			return m, nil
		case key.Matches(msg, keys.Redo):
			m.prompt.Redo()
			return m, nil
		case key.Matches(msg, keys.Select):
			m.selecting = !m.selecting
			m.prompt.SetSelection(m.selecting)
			return m, nil
		}
		handleKey(m.prompt, msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func handleKey(b *editor.TextBuffer, msg tea.KeyMsg) {
	switch msg.String() {
	case "left":
		b.MoveCursor(editor.Move{Dir: editor.MoveLeft})
	case "right":
		b.MoveCursor(editor.Move{Dir: editor.MoveRight})
	case "up":
		b.MoveCursor(editor.Move{Dir: editor.MoveUp})
	case "down":
		b.MoveCursor(editor.Move{Dir: editor.MoveDown})
	case "home":
		b.MoveCursor(editor.Move{Dir: editor.MoveStartOfLine})
	case "end":
		b.MoveCursor(editor.Move{Dir: editor.MoveEndOfLine})
	case "backspace":
		b.Delete(false, 1)
	case "delete":
		b.Delete(true, 1)
	case "alt+enter":
		b.InsertAtCursor("\n", "")
	case "tab":
		b.InsertAtCursor("\t", "")
	default:
		if len(msg.Runes) > 0 {
			b.InsertAtCursor(string(msg.Runes), "")
		}
	}
}

func (m *model) submit() {
	text := strings.TrimSpace(m.prompt.String())
	if text == "" {
		return
	}
	m.transcript.Append("\n> "+text+"\n", "user")
	m.transcript.Append("echo: "+text+"\n", "assistant")
	m.prompt.Empty()
	m.syncTranscript()
}

func (m *model) syncTranscript() {
	lines := m.transcript.DisplayLines()
	rendered := make([]string, 0, len(lines))
	for i := range lines {
		rendered = append(rendered, lines[i].Render())
	}
	m.view.SetContent(strings.Join(rendered, "\n"))
	m.view.GotoBottom()
}

func (m model) View() string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true, false, false, false).
		Width(m.width)
	return m.view.View() + "\n" + border.Render(m.prompt.View())
}

func main() {
	lipgloss.SetColorProfile(termenv.ColorProfile())
	if _, err := tea.NewProgram(newModel(), tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "quill-demo:", err)
		os.Exit(1)
	}
}
