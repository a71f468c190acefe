package shelltest

import (
	"context"

	"github.com/josephlewis42/modoki/core/shell"
)

// Cmd runs a single handler, it's similar to exec.Cmd.
type Cmd struct {
	// Handler to run.
	Handler shell.Handler
	// Args passed to the handler, not including the command name.
	Args []string
	// Stdin holds chunks delivered as if piped from a previous stage, an
	// end-of-stream marker follows them. If nil, Terminal supplies input.
	Stdin []string
	// Terminal receives output and supplies interactive input. Created on
	// demand.
	Terminal *Terminal

	ExitStatus int
}

// Command creates a Cmd for h.
func Command(h shell.Handler, args ...string) *Cmd {
	return &Cmd{
		Handler: h,
		Args:    args,
	}
}

type cmdIO struct {
	shell.Reader
	shell.Writer
}

// Run runs the handler to completion.
func (c *Cmd) Run(ctx context.Context) {
	if c.Terminal == nil {
		c.Terminal = NewTerminal()
	}

	var in shell.Reader = &terminalReader{c.Terminal}
	if c.Stdin != nil {
		buf := shell.NewLineBuffer()
		for _, chunk := range c.Stdin {
			buf.Push(chunk)
		}
		buf.Push(shell.EndOfStream)
		in = buf
	}

	c.ExitStatus = c.Handler.Main(ctx, cmdIO{Reader: in, Writer: c.Terminal}, c.Args)
}

// CombinedOutput runs the handler and returns its styled transcript.
func (c *Cmd) CombinedOutput(ctx context.Context) []byte {
	c.Run(ctx)
	return []byte(c.Terminal.Transcript())
}

type terminalReader struct {
	t *Terminal
}

func (r *terminalReader) ReadLine(ctx context.Context, opts shell.ReadOptions) string {
	line, err := r.t.Read(ctx, opts)
	if err != nil {
		return shell.EndOfInput
	}
	return line
}
