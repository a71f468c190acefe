package shell

import (
	"context"
	"strings"
)

// Control characters that terminate a committed line of input.
const (
	// Submit ends a normally committed line.
	Submit = "\n"
	// EndOfInput is appended when the user detaches (^D).
	EndOfInput = "\x04"
	// Completion is appended when the user requests completion (Tab).
	Completion = "\t"
	// EndOfStream is pushed into a pipe buffer after the producing stage
	// returns.
	EndOfStream = "\x04"
)

// Color is a named display color, e.g. "red" or "cyan". The empty color means
// the surface default.
type Color string

const (
	ColorDefault Color = ""
	ColorWhite   Color = "white"
	ColorRed     Color = "red"
	ColorCyan    Color = "cyan"
	ColorLime    Color = "lime"
	ColorGray    Color = "gray"
)

// Style carries optional color hints for a write.
type Style struct {
	Foreground Color
	Background Color
}

// Fg is shorthand for a foreground-only style.
func Fg(c Color) Style {
	return Style{Foreground: c}
}

// ReadOptions controls a single interactive read.
type ReadOptions struct {
	// Hidden disables echo, used for passwords.
	Hidden bool
	// Default pre-fills the editable draft.
	Default string
	// DefaultStyle is the initial style of a pre-filled draft.
	DefaultStyle Style
	// OnInput is called with the draft after every keystroke, the returned
	// style is applied to the draft if the surface supports it.
	OnInput func(draft string) Style
}

// Terminal is the host surface the shell runs inside.
type Terminal interface {
	// Read blocks until the user commits a line. The returned text ends with
	// Submit, EndOfInput or Completion. An error means the surface is gone and
	// is treated like EndOfInput.
	Read(ctx context.Context, opts ReadOptions) (string, error)

	// Write displays text, each "\n" starts a new visual line.
	Write(text string, style Style)

	// Clear removes everything displayed so far.
	Clear()
}

// Reader supplies input chunks to a command.
type Reader interface {
	ReadLine(ctx context.Context, opts ReadOptions) string
}

// Writer receives output from a command.
type Writer interface {
	Write(text string, style Style)
}

// IO is the capability handed to every command.
type IO interface {
	Reader
	Writer
}

type stageIO struct {
	Reader
	Writer
}

var _ IO = stageIO{}

// IsEndOfInput reports whether committed text carries the detach signal.
func IsEndOfInput(text string) bool {
	return strings.Contains(text, EndOfInput)
}

// IsCompletion reports whether committed text carries a completion request.
func IsCompletion(text string) bool {
	return strings.Contains(text, Completion)
}
