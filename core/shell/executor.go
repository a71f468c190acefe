package shell

import (
	"context"
	"fmt"
	"log"

	"github.com/josephlewis42/modoki/core/logger"
)

// Session holds the state of one logged in user.
type Session struct {
	User string
	// Status is the exit status of the last command.
	Status int
	// Killed is set when the user exits or detaches.
	Killed bool
}

// Reset prepares the session for a new login.
func (s *Session) Reset(user string) {
	*s = Session{User: user}
}

// EventRecorder receives session events.
type EventRecorder interface {
	Record(event logger.Event) error
}

// Executor runs parsed pipelines against a registry.
type Executor struct {
	Registry *Registry
	Session  *Session
	// Events is optional.
	Events EventRecorder
}

// interactiveReader marks the session killed when the user detaches.
type interactiveReader struct {
	term    Reader
	session *Session
}

func (r *interactiveReader) ReadLine(ctx context.Context, opts ReadOptions) string {
	line := r.term.ReadLine(ctx, opts)
	if IsEndOfInput(line) {
		r.session.Killed = true
	}
	return line
}

// Run executes the stages of p in order. Stages joined by a pipe exchange
// output through a fresh LineBuffer, all others use term. Execution stops
// after a failed stage followed by "&&", or once the session is killed.
func (e *Executor) Run(ctx context.Context, p Pipeline, term IO) {
	interactive := &interactiveReader{term: term, session: e.Session}

	var upstream *LineBuffer
	for _, stage := range p.Stages {
		var in Reader = interactive
		if stage.Before == OpPipe {
			if upstream == nil {
				upstream = NewLineBuffer()
			}
			in = upstream
		}

		var (
			out        Writer = term
			downstream *LineBuffer
		)
		if stage.After == OpPipe {
			downstream = NewLineBuffer()
			out = downstream
		}

		e.runStage(ctx, stage, stageIO{Reader: in, Writer: out}, term)

		if downstream != nil {
			downstream.Push(EndOfStream)
		}
		upstream = downstream

		if e.Session.Status != StatusSuccess && stage.After == OpAnd {
			break
		}
		if e.Session.Killed {
			break
		}
	}
}

func (e *Executor) runStage(ctx context.Context, stage Stage, stageIO IO, term Writer) {
	handler, ok := e.Registry.Get(stage.Name)
	if !ok {
		term.Write(fmt.Sprintf("Command '%s' not found\n", stage.Name), Fg(ColorRed))
		e.Session.Status = StatusNotFound
		e.record(logger.NewUnknownCommand(stage.Name, stage.Args))
		return
	}

	e.Session.Status = handler.Main(ctx, stageIO, stage.Args)
	e.record(logger.NewRunCommand(stage.Name, stage.Args, e.Session.Status))
}

func (e *Executor) record(event logger.Event) {
	if e.Events == nil {
		return
	}
	if err := e.Events.Record(event); err != nil {
		log.Printf("recording %s event: %v", event.Type, err)
	}
}
