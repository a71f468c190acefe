// Package shelltest provides scripted terminals and command runners for
// tests.
package shelltest

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/modoki/core/shell"
)

// Write is a single call to Terminal.Write.
type Write struct {
	Text  string
	Style shell.Style
}

// Transcript renders writes as text, styled spans are wrapped in
// <color>...</color> tags.
func Transcript(writes []Write) string {
	var sb strings.Builder
	for _, w := range writes {
		tag := styleTag(w.Style)
		if tag == "" || w.Text == "" {
			sb.WriteString(w.Text)
			continue
		}
		fmt.Fprintf(&sb, "<%s>%s</%s>", tag, w.Text, tag)
	}
	return sb.String()
}

func styleTag(style shell.Style) string {
	var parts []string
	if style.Foreground != shell.ColorDefault {
		parts = append(parts, string(style.Foreground))
	}
	if style.Background != shell.ColorDefault {
		parts = append(parts, "bg:"+string(style.Background))
	}
	return strings.Join(parts, ",")
}

// Terminal is a shell.Terminal that replays scripted input lines and records
// everything written to it. Once the script runs out Read returns io.EOF.
type Terminal struct {
	// Input holds committed lines including their trailing control character.
	Input []string
	// Reads holds the options of every Read call.
	Reads []shell.ReadOptions
	// Writes holds every Write call.
	Writes []Write
	// Clears counts calls to Clear.
	Clears int
}

var _ shell.Terminal = (*Terminal)(nil)

// NewTerminal creates a terminal that will deliver the given lines.
func NewTerminal(input ...string) *Terminal {
	return &Terminal{Input: input}
}

// Read implements shell.Terminal.
func (t *Terminal) Read(ctx context.Context, opts shell.ReadOptions) (string, error) {
	t.Reads = append(t.Reads, opts)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(t.Input) == 0 {
		return "", io.EOF
	}

	line := t.Input[0]
	t.Input = t.Input[1:]
	if opts.OnInput != nil {
		opts.OnInput(strings.TrimRight(line, shell.Submit+shell.EndOfInput+shell.Completion))
	}
	return line, nil
}

// Write implements shell.Terminal.
func (t *Terminal) Write(text string, style shell.Style) {
	t.Writes = append(t.Writes, Write{Text: text, Style: style})
}

// Clear implements shell.Terminal.
func (t *Terminal) Clear() {
	t.Clears++
}

// Output returns the text written since creation, without styles.
func (t *Terminal) Output() string {
	var sb strings.Builder
	for _, w := range t.Writes {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// Transcript returns the styled text written since creation.
func (t *Terminal) Transcript() string {
	return Transcript(t.Writes)
}
