package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/josephlewis42/modoki/core/shell"
)

var palette = map[shell.Color]lipgloss.Color{
	shell.ColorWhite: lipgloss.Color("15"),
	shell.ColorRed:   lipgloss.Color("9"),
	shell.ColorCyan:  lipgloss.Color("14"),
	shell.ColorLime:  lipgloss.Color("10"),
	shell.ColorGray:  lipgloss.Color("8"),
}

// lipglossStyle converts a shell style, unknown colors are passed through as
// lipgloss color strings, e.g. "#ff00ff".
func lipglossStyle(style shell.Style) lipgloss.Style {
	out := lipgloss.NewStyle()
	if style.Foreground != shell.ColorDefault {
		out = out.Foreground(toColor(style.Foreground))
	}
	if style.Background != shell.ColorDefault {
		out = out.Background(toColor(style.Background))
	}
	return out
}

func toColor(c shell.Color) lipgloss.Color {
	if mapped, ok := palette[c]; ok {
		return mapped
	}
	return lipgloss.Color(c)
}

type span struct {
	text  string
	style shell.Style
}

// Messages sent by Terminal to the running program.
type (
	writeMsg struct {
		text  string
		style shell.Style
	}

	clearMsg struct{}

	readMsg struct {
		opts  shell.ReadOptions
		reply chan<- string
	}
)

// model holds the transcript and the line being edited. The last transcript
// line is open, it holds the prompt while a read is pending.
type model struct {
	lines   [][]span
	input   textinput.Model
	pending *readMsg
	width   int
	height  int
}

func newModel() model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 4096

	return model{
		lines: [][]span{nil},
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 1
		return m, nil

	case writeMsg:
		m.write(msg.text, msg.style)
		return m, nil

	case clearMsg:
		m.lines = [][]span{nil}
		return m, nil

	case readMsg:
		return m, m.startRead(msg)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		}
		if m.pending == nil {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyEnter:
			m.commit(shell.Submit)
			return m, nil
		case tea.KeyTab:
			m.commit(shell.Completion)
			return m, nil
		case tea.KeyCtrlD:
			m.commit(shell.EndOfInput)
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if onInput := m.pending.opts.OnInput; onInput != nil {
			m.input.TextStyle = lipglossStyle(onInput(m.input.Value()))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// write appends text to the transcript, each "\n" opens a new line.
func (m *model) write(text string, style shell.Style) {
	for i, segment := range strings.Split(text, "\n") {
		if i > 0 {
			m.lines = append(m.lines, nil)
		}
		if segment != "" {
			last := len(m.lines) - 1
			m.lines[last] = append(m.lines[last], span{text: segment, style: style})
		}
	}
}

func (m *model) startRead(msg readMsg) tea.Cmd {
	m.pending = &msg

	m.input.Reset()
	m.input.EchoMode = textinput.EchoNormal
	if msg.opts.Hidden {
		m.input.EchoMode = textinput.EchoNone
	}
	m.input.SetValue(msg.opts.Default)
	m.input.CursorEnd()
	m.input.TextStyle = lipglossStyle(msg.opts.DefaultStyle)

	return m.input.Focus()
}

// commit ends the pending read, echoing the line into the transcript.
func (m *model) commit(terminator string) {
	value := m.input.Value()
	style := shell.Style{}
	if onInput := m.pending.opts.OnInput; onInput != nil {
		style = onInput(value)
	}

	echo := value
	if m.pending.opts.Hidden {
		echo = ""
	}
	if terminator == shell.EndOfInput {
		echo += "^D"
	}
	m.write(echo+"\n", style)

	m.pending.reply <- value + terminator
	m.pending = nil
	m.input.Blur()
	m.input.Reset()
}

func (m model) View() string {
	rendered := make([]string, 0, len(m.lines))
	for _, line := range m.lines {
		var sb strings.Builder
		for _, s := range line {
			sb.WriteString(lipglossStyle(s.style).Render(s.text))
		}
		rendered = append(rendered, sb.String())
	}

	if m.pending != nil {
		rendered[len(rendered)-1] += m.input.View()
	}

	if m.height > 0 && len(rendered) > m.height {
		rendered = rendered[len(rendered)-m.height:]
	}
	return strings.Join(rendered, "\n")
}
