// Package tui implements a full screen shell.Terminal with live input
// coloring.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephlewis42/modoki/core/shell"
)

// ErrClosed is returned by reads after the program exits.
var ErrClosed = errors.New("tui: terminal closed")

// Terminal is a shell.Terminal rendered by a bubbletea program. Run must be
// called for reads and writes to make progress.
type Terminal struct {
	program *tea.Program
	done    chan struct{}
}

var _ shell.Terminal = (*Terminal)(nil)

// New creates a terminal, opts are passed to the underlying program.
func New(opts ...tea.ProgramOption) *Terminal {
	return &Terminal{
		program: tea.NewProgram(newModel(), opts...),
		done:    make(chan struct{}),
	}
}

// Run shows the terminal until Ctrl-C is pressed or Quit is called.
func (t *Terminal) Run() error {
	defer close(t.done)
	_, err := t.program.Run()
	return err
}

// Quit stops the program.
func (t *Terminal) Quit() {
	t.program.Quit()
}

// Read implements shell.Terminal.
func (t *Terminal) Read(ctx context.Context, opts shell.ReadOptions) (string, error) {
	select {
	case <-t.done:
		return "", ErrClosed
	default:
	}

	reply := make(chan string, 1)
	t.program.Send(readMsg{opts: opts, reply: reply})

	select {
	case line := <-reply:
		return line, nil
	case <-t.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Write implements shell.Terminal.
func (t *Terminal) Write(text string, style shell.Style) {
	t.program.Send(writeMsg{text: text, style: style})
}

// Clear implements shell.Terminal.
func (t *Terminal) Clear() {
	t.program.Send(clearMsg{})
}
