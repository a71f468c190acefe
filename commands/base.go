package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
	getopt "github.com/pborman/getopt/v2"
)

// Registrar accepts command registrations, it's satisfied by *shell.Shell and
// *shell.Registry.
type Registrar interface {
	Register(name string, h shell.Handler)
}

// BuiltinCommand is a named handler that can be registered with a shell.
type BuiltinCommand struct {
	Name    string
	Handler shell.Handler
}

// ListBuiltinCommands returns the application's built-in commands sorted by
// name. clock supplies the time for date, nil means time.Now.
func ListBuiltinCommands(clock func() time.Time) []BuiltinCommand {
	if clock == nil {
		clock = time.Now
	}

	out := []BuiltinCommand{
		{Name: "echo", Handler: shell.HandlerFunc(Echo)},
		{Name: "date", Handler: Date(clock)},
		{Name: "sleep", Handler: shell.HandlerFunc(Sleep)},
		{Name: "grep", Handler: shell.HandlerFunc(Grep)},
		{Name: "wc", Handler: shell.HandlerFunc(Wc)},
	}
	for i := range noOpCommands {
		cmd := noOpCommands[i]
		out = append(out, BuiltinCommand{Name: cmd.Name, Handler: cmd.ToHandler()})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Register adds every built-in command to r.
func Register(r Registrar, clock func() time.Time) {
	for _, cmd := range ListBuiltinCommands(clock) {
		r.Register(cmd.Name, cmd.Handler)
	}
}

// SimpleCommand parses POSIX style flags for a command and handles --help.
type SimpleCommand struct {
	// Name is used as the program name while parsing.
	Name string
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips reporting flag errors and always runs the callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
		s.flags.SetProgram(s.Name)
	}

	return s.flags
}

// PrintHelp writes help for the command as a single chunk.
func (s *SimpleCommand) PrintHelp(w shell.Writer) {
	var sb strings.Builder
	fmt.Fprint(&sb, "usage: ")
	fmt.Fprintln(&sb, s.Use)
	fmt.Fprintln(&sb, s.Short)
	fmt.Fprintln(&sb)
	fmt.Fprintln(&sb, "Flags:")
	s.Flags().PrintOptions(&sb)
	w.Write(sb.String(), shell.Style{})
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(io shell.IO, args []string, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(append([]string{s.Name}, args...), nil)
	if err != nil && !s.NeverBail {
		io.Write(fmt.Sprintf("error: %s\n\n", err), shell.Fg(shell.ColorRed))
		s.PrintHelp(io)
		return shell.StatusFailure
	}

	if *s.ShowHelp {
		s.PrintHelp(io)
		return shell.StatusSuccess
	}

	return callback()
}
