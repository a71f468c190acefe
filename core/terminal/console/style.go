package console

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/modoki/core/shell"
)

const clearScreen = "\033[H\033[2J"

var foregrounds = map[shell.Color]color.Attribute{
	shell.ColorWhite: color.FgWhite,
	shell.ColorRed:   color.FgRed,
	shell.ColorCyan:  color.FgCyan,
	shell.ColorLime:  color.FgHiGreen,
	shell.ColorGray:  color.FgHiBlack,
}

var backgrounds = map[shell.Color]color.Attribute{
	shell.ColorWhite: color.BgWhite,
	shell.ColorRed:   color.BgRed,
	shell.ColorCyan:  color.BgCyan,
	shell.ColorLime:  color.BgHiGreen,
	shell.ColorGray:  color.BgHiBlack,
}

// sprint renders text in style using ANSI escapes, unknown colors are
// ignored.
func sprint(style shell.Style, text string, enabled bool) string {
	var attrs []color.Attribute
	if fg, ok := foregrounds[style.Foreground]; ok {
		attrs = append(attrs, fg)
	}
	if bg, ok := backgrounds[style.Background]; ok {
		attrs = append(attrs, bg)
	}
	if !enabled || len(attrs) == 0 || text == "" {
		return text
	}

	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// lineWriter writes complete lines immediately and holds back the trailing
// partial line so it can become the prompt of the next read.
type lineWriter struct {
	w       io.Writer
	crlf    bool
	color   bool
	partial strings.Builder
}

func (l *lineWriter) Write(text string, style shell.Style) error {
	idx := strings.LastIndex(text, "\n")
	if idx < 0 {
		l.partial.WriteString(sprint(style, text, l.color))
		return nil
	}

	head := l.partial.String() + sprint(style, text[:idx+1], l.color)
	l.partial.Reset()
	l.partial.WriteString(sprint(style, text[idx+1:], l.color))

	if l.crlf {
		head = strings.ReplaceAll(head, "\n", "\r\n")
	}
	_, err := io.WriteString(l.w, head)
	return err
}

// TakePartial returns and forgets the pending partial line.
func (l *lineWriter) TakePartial() string {
	out := l.partial.String()
	l.partial.Reset()
	return out
}

// Flush writes the pending partial line.
func (l *lineWriter) Flush() error {
	_, err := io.WriteString(l.w, l.TakePartial())
	return err
}

func (l *lineWriter) Clear() error {
	l.partial.Reset()
	_, err := io.WriteString(l.w, clearScreen)
	return err
}
