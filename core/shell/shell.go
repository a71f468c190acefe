package shell

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/josephlewis42/modoki/core/logger"
	"github.com/mattn/go-runewidth"
)

// PromptFunc writes the prompt before each line is read.
type PromptFunc func(w Writer, failed bool, user string)

// DefaultPrompt writes "> ", red if the last command failed.
func DefaultPrompt(w Writer, failed bool, _ string) {
	color := ColorWhite
	if failed {
		color = ColorRed
	}
	w.Write("> ", Fg(color))
}

// Authenticator decides whether a login succeeds.
type Authenticator func(user, password string) bool

// Option configures a Shell.
type Option func(*Shell)

// WithPrompt replaces DefaultPrompt.
func WithPrompt(prompt PromptFunc) Option {
	return func(s *Shell) {
		s.prompt = prompt
	}
}

// WithBanner sets the text shown after a successful login.
func WithBanner(banner string) Option {
	return func(s *Shell) {
		s.banner = banner
	}
}

// WithAuthenticator checks passwords at login, by default any password is
// accepted.
func WithAuthenticator(auth Authenticator) Option {
	return func(s *Shell) {
		s.auth = auth
	}
}

// WithEventLog records logins and commands.
func WithEventLog(events EventRecorder, remoteAddr string) Option {
	return func(s *Shell) {
		s.events = events
		s.remoteAddr = remoteAddr
	}
}

// Shell runs login and prompt cycles on a Terminal.
type Shell struct {
	term     Terminal
	io       *terminalIO
	registry *Registry
	session  *Session
	executor *Executor

	prompt     PromptFunc
	banner     string
	auth       Authenticator
	events     EventRecorder
	remoteAddr string
}

// New creates a shell on term with the help, clear and exit builtins
// registered.
func New(term Terminal, opts ...Option) *Shell {
	s := &Shell{
		term:     term,
		io:       &terminalIO{term: term},
		registry: NewRegistry(),
		session:  &Session{},
		prompt:   DefaultPrompt,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.executor = &Executor{
		Registry: s.registry,
		Session:  s.session,
		Events:   s.events,
	}
	s.registerBuiltins()

	return s
}

// Register adds a command, replacing any command with the same name.
func (s *Shell) Register(name string, h Handler) {
	s.registry.Register(name, h)
}

// Registry returns the shell's command registry.
func (s *Shell) Registry() *Registry {
	return s.registry
}

// Session returns the current session state.
func (s *Shell) Session() *Session {
	return s.session
}

// Login runs the login sequence and reports whether a session started.
func (s *Shell) Login(ctx context.Context) bool {
	s.term.Clear()
	s.term.Write("login\n", Style{})

	s.term.Write("user: ", Style{})
	user := s.io.ReadLine(ctx, ReadOptions{})
	if IsEndOfInput(user) {
		return false
	}
	user = strings.ReplaceAll(user, Submit, "")

	s.term.Write("password: ", Style{})
	password := s.io.ReadLine(ctx, ReadOptions{Hidden: true})
	if IsEndOfInput(password) {
		return false
	}
	password = strings.ReplaceAll(password, Submit, "")

	if s.auth != nil && !s.auth(user, password) {
		s.record(logger.NewLoginAttempt(user, s.remoteAddr, logger.ResultFailure))
		s.term.Write("Login incorrect\n", Fg(ColorRed))
		return false
	}
	s.record(logger.NewLoginAttempt(user, s.remoteAddr, logger.ResultSuccess))

	s.session.Reset(user)
	if s.banner != "" {
		s.term.Write(s.banner+"\n\n", Fg(ColorGray))
	}
	return true
}

// Run performs one login cycle: log in, then prompt until the session is
// killed. It returns the terminal's error if the terminal failed.
func (s *Shell) Run(ctx context.Context) error {
	if !s.Login(ctx) {
		return s.io.Err()
	}

	draft := ""
	for !s.session.Killed {
		draft = s.PromptCycle(ctx, draft)
	}
	s.record(logger.NewSessionEnd(s.session.User, s.session.Status))

	return s.io.Err()
}

// Serve repeats login cycles until the terminal fails or ctx is done.
func (s *Shell) Serve(ctx context.Context) error {
	for {
		if err := s.Run(ctx); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// PromptCycle shows the prompt, reads a line pre-filled with draft and either
// runs it or, on a completion request, returns the completed draft for the
// next cycle.
func (s *Shell) PromptCycle(ctx context.Context, draft string) string {
	s.prompt(s.io, s.session.Status != StatusSuccess, s.session.User)

	opts := ReadOptions{
		Default: draft,
		OnInput: s.draftStyle,
	}
	if draft != "" {
		opts.DefaultStyle = s.draftStyle(draft)
	}

	line := s.io.ReadLine(ctx, opts)
	if IsEndOfInput(line) {
		s.session.Killed = true
		return ""
	}

	p := Parse(strings.ReplaceAll(line, Completion, ""), s.registry)
	if IsCompletion(line) {
		candidates, next := Suggest(p, s.registry.Names())
		if len(candidates) > 1 {
			s.writeCandidates(candidates)
		}
		return next
	}

	s.executor.Run(ctx, p, s.io)
	return ""
}

func (s *Shell) draftStyle(draft string) Style {
	switch {
	case draft == "":
		return Fg(ColorWhite)
	case Parse(draft, s.registry).HasUnknownCommand:
		return Fg(ColorRed)
	default:
		return Fg(ColorCyan)
	}
}

// writeCandidates lists completions three to a row in aligned columns.
func (s *Shell) writeCandidates(candidates []string) {
	width := 0
	for _, c := range candidates {
		if w := runewidth.StringWidth(c); w > width {
			width = w
		}
	}

	var sb strings.Builder
	for i, c := range candidates {
		if i%3 == 2 || i == len(candidates)-1 {
			sb.WriteString(c)
			sb.WriteString("\n")
			continue
		}
		sb.WriteString(runewidth.FillRight(c, width+2))
	}
	s.term.Write(sb.String(), Style{})
}

func (s *Shell) record(event logger.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(event); err != nil {
		log.Printf("recording %s event: %v", event.Type, err)
	}
}

// terminalIO adapts a Terminal to IO, turning read errors into EndOfInput.
type terminalIO struct {
	term Terminal
	err  error
}

var _ IO = (*terminalIO)(nil)

func (t *terminalIO) ReadLine(ctx context.Context, opts ReadOptions) string {
	line, err := t.term.Read(ctx, opts)
	if err != nil {
		if t.err == nil {
			t.err = err
		}
		if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			log.Printf("terminal read: %v", err)
		}
		return strings.TrimSuffix(line, Submit) + EndOfInput
	}
	return line
}

func (t *terminalIO) Write(text string, style Style) {
	t.term.Write(text, style)
}

// Err returns the first read error.
func (t *terminalIO) Err() error {
	return t.err
}
