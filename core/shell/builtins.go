package shell

import (
	"context"
	"fmt"
	"sort"
)

// BuiltinNames lists the commands every Shell registers itself.
var BuiltinNames = []string{"clear", "exit", "help"}

func (s *Shell) registerBuiltins() {
	builtins := map[string]HandlerFunc{
		"help":  s.help,
		"clear": s.clear,
		"exit":  s.exit,
	}
	for _, name := range BuiltinNames {
		s.Register(name, builtins[name])
	}
}

// help lists the registered commands and the supported operators.
func (s *Shell) help(_ context.Context, io IO, _ []string) int {
	io.Write("available commands list\n", Style{})
	for _, name := range s.registry.Names() {
		io.Write(fmt.Sprintf("* %s\n", name), Fg(ColorCyan))
	}

	io.Write("available control operator list\n", Style{})
	for _, op := range quoted(ControlOperators) {
		io.Write(fmt.Sprintf("* %s\n", op), Fg(ColorCyan))
	}

	io.Write("available pipe list\n", Style{})
	for _, op := range quoted(PipeOperators) {
		io.Write(fmt.Sprintf("* %s\n", op), Fg(ColorCyan))
	}

	return StatusSuccess
}

func quoted(ops []Operator) []string {
	var out []string
	for _, op := range ops {
		out = append(out, fmt.Sprintf("%q", string(op)))
	}
	sort.Strings(out)
	return out
}

// clear clears the terminal.
func (s *Shell) clear(context.Context, IO, []string) int {
	s.term.Clear()
	return StatusSuccess
}

// exit ends the session once the current pipeline unwinds.
func (s *Shell) exit(context.Context, IO, []string) int {
	s.session.Killed = true
	return StatusSuccess
}
