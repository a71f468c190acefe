// Package console implements a line mode shell.Terminal over a byte stream,
// either the local TTY or a remote PTY.
package console

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/modoki/core/shell"
)

// Options configures a Console.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer

	// Width returns the terminal width, defaults to 80 columns.
	Width func() int
	// Remote marks a stream owned by a remote PTY: the local TTY mode is left
	// alone and newlines are written as CRLF.
	Remote bool
	// Color enables ANSI colors.
	Color bool
}

// Console is a shell.Terminal backed by readline.
type Console struct {
	rl    *readline.Instance
	stdin *readline.CancelableStdin
	out   *lineWriter

	mu         sync.Mutex
	terminator string
}

var _ shell.Terminal = (*Console)(nil)

// New creates a console, it must be closed after use.
func New(opts Options) (*Console, error) {
	if opts.Width == nil {
		opts.Width = func() int { return 80 }
	}

	c := &Console{
		stdin: readline.NewCancelableStdin(opts.Stdin),
		out: &lineWriter{
			w:     opts.Stdout,
			crlf:  opts.Remote,
			color: opts.Color,
		},
	}

	cfg := &readline.Config{
		Stdin:               c.stdin,
		Stdout:              opts.Stdout,
		Stderr:              opts.Stdout,
		FuncGetWidth:        opts.Width,
		FuncFilterInputRune: c.filterInputRune,
	}
	if opts.Remote {
		cfg.FuncIsTerminal = func() bool { return true }
		cfg.FuncMakeRaw = func() error { return nil }
		cfg.FuncExitRaw = func() error { return nil }
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	c.rl = rl

	return c, nil
}

// filterInputRune turns Tab and Ctrl-D into a submit that carries the matching
// control character.
func (c *Console) filterInputRune(r rune) (rune, bool) {
	switch r {
	case readline.CharTab:
		c.setTerminator(shell.Completion)
		return readline.CharEnter, true
	case readline.CharDelete:
		c.setTerminator(shell.EndOfInput)
		return readline.CharEnter, true
	}
	return r, true
}

func (c *Console) setTerminator(t string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.terminator = t
}

func (c *Console) takeTerminator() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.terminator
	c.terminator = ""
	if t == "" {
		return shell.Submit
	}
	return t
}

// Read implements shell.Terminal. Pending partial output becomes the prompt.
// Ctrl-C discards the line being edited.
func (c *Console) Read(ctx context.Context, opts shell.ReadOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	stop := context.AfterFunc(ctx, func() {
		c.stdin.Close()
	})
	defer stop()

	prompt := c.out.TakePartial()
	c.takeTerminator()

	for {
		var (
			line string
			err  error
		)
		if opts.Hidden {
			var pass []byte
			pass, err = c.rl.ReadPassword(prompt)
			line = string(pass)
		} else {
			c.rl.SetPrompt(prompt)
			line, err = c.rl.ReadlineWithDefault(opts.Default)
		}

		switch {
		case errors.Is(err, readline.ErrInterrupt):
			c.takeTerminator()
			continue
		case err != nil && ctx.Err() != nil:
			return "", ctx.Err()
		case err != nil:
			return "", err
		}

		return line + c.takeTerminator(), nil
	}
}

// Write implements shell.Terminal.
func (c *Console) Write(text string, style shell.Style) {
	if err := c.out.Write(text, style); err != nil {
		log.Printf("console write: %v", err)
	}
}

// Clear implements shell.Terminal.
func (c *Console) Clear() {
	if err := c.out.Clear(); err != nil {
		log.Printf("console clear: %v", err)
	}
}

// Close flushes pending output and releases the terminal.
func (c *Console) Close() error {
	flushErr := c.out.Flush()
	return errors.Join(flushErr, c.rl.Close())
}
