package ttylog

import (
	"context"
	"testing"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/shell/shelltest"
	"github.com/stretchr/testify/assert"
)

type capture []TTYLogEntry

func (c *capture) sink(e *TTYLogEntry) error {
	*c = append(*c, *e)
	return nil
}

func (c capture) strings(fd FD) (out []string) {
	for _, e := range c {
		if e.Fd == fd {
			out = append(out, string(e.Data))
		}
	}
	return
}

func TestRecorder(t *testing.T) {
	term := shelltest.NewTerminal("ls\n", "hunter2\n", "gr"+shell.Completion, "x"+shell.EndOfInput)
	var entries capture
	rec := NewRecorder(term, entries.sink)
	rec.now = func() time.Time { return time.UnixMicro(42) }
	ctx := context.Background()

	rec.Clear()
	rec.Write("user: ", shell.Style{})
	rec.Read(ctx, shell.ReadOptions{})
	rec.Write("password: ", shell.Fg(shell.ColorRed))
	rec.Read(ctx, shell.ReadOptions{Hidden: true})
	rec.Write("a\nb\r\n", shell.Style{})
	rec.Read(ctx, shell.ReadOptions{})
	rec.Read(ctx, shell.ReadOptions{})
	_, err := rec.Read(ctx, shell.ReadOptions{})

	assert.Error(t, err)
	assert.Equal(t, 1, term.Clears)
	assert.Equal(t, "user: password: a\nb\r\n", term.Output())
	assert.Equal(t, []string{"ls\n", "gr\t", "x\x04"}, entries.strings(FDStdin))
	assert.Equal(t, []string{
		clearScreen,
		"user: ",
		"ls\r\n",
		"password: ",
		"\r\n",
		"a\r\nb\r\n",
		"gr\r\n",
		"x^D\r\n",
	}, entries.strings(FDStdout))
	assert.Equal(t, int64(42), entries[0].TimestampMicros)
}
