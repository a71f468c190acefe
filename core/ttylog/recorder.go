package ttylog

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
)

const clearScreen = "\033[H\033[2J"

var crlf = strings.NewReplacer("\r\n", "\r\n", "\n", "\r\n")

// Recorder is a shell.Terminal that forwards everything shown on or typed
// into the wrapped terminal to a LogSink.
type Recorder struct {
	shell.Terminal

	mutex  sync.Mutex
	output LogSink
	now    func() time.Time
}

var _ shell.Terminal = (*Recorder)(nil)

// NewRecorder creates a recorder that forwards all events to output.
func NewRecorder(toWrap shell.Terminal, output LogSink) *Recorder {
	return &Recorder{
		Terminal: toWrap,
		output:   output,
		now:      time.Now,
	}
}

func (r *Recorder) record(fd FD, data string) {
	if data == "" {
		return
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()
	err := r.output(&TTYLogEntry{
		TimestampMicros: r.now().UnixMicro(),
		Fd:              fd,
		Data:            []byte(data),
	})
	if err != nil {
		log.Print(err)
	}
}

// Read records the committed line, hidden input is never recorded.
func (r *Recorder) Read(ctx context.Context, opts shell.ReadOptions) (string, error) {
	line, err := r.Terminal.Read(ctx, opts)
	if opts.Hidden {
		r.record(FDStdout, "\r\n")
		return line, err
	}

	r.record(FDStdin, line)

	echo := line
	switch {
	case shell.IsEndOfInput(echo):
		echo = strings.ReplaceAll(echo, shell.EndOfInput, "^D") + "\n"
	case shell.IsCompletion(echo):
		echo = strings.ReplaceAll(echo, shell.Completion, "") + "\n"
	}
	r.record(FDStdout, crlf.Replace(echo))
	return line, err
}

// Write records the text as output.
func (r *Recorder) Write(text string, style shell.Style) {
	r.Terminal.Write(text, style)
	r.record(FDStdout, crlf.Replace(text))
}

// Clear records a VT100 clear screen.
func (r *Recorder) Clear() {
	r.Terminal.Clear()
	r.record(FDStdout, clearScreen)
}
