package commands

import (
	"context"

	"github.com/josephlewis42/modoki/core/shell"
)

// NoOpCommand is a command that prints fixed output and exits with a fixed
// status.
type NoOpCommand struct {
	Name     string
	Use      string
	Short    string
	Stdout   string
	ExitCode int
}

// ToHandler converts the no-op command description to a functioning command.
func (c *NoOpCommand) ToHandler() shell.Handler {
	return shell.HandlerFunc(func(_ context.Context, io shell.IO, args []string) int {
		cmd := &SimpleCommand{
			Name:  c.Name,
			Use:   c.Use,
			Short: c.Short,
			// Never bail, even if args are bad.
			NeverBail: true,
		}

		return cmd.Run(io, args, func() int {
			if c.Stdout != "" {
				io.Write(c.Stdout+"\n", shell.Style{})
			}

			return c.ExitCode
		})
	})
}

var noOpCommands = []NoOpCommand{
	{
		Name:  "true",
		Use:   "true",
		Short: "Do nothing, successfully.",
	},
	{
		Name:     "false",
		Use:      "false",
		Short:    "Do nothing, unsuccessfully.",
		ExitCode: shell.StatusFailure,
	},
}

// RegisterNoOps adds user defined no-op commands to r, replacing built-ins
// with the same name.
func RegisterNoOps(r Registrar, cmds []NoOpCommand) {
	for i := range cmds {
		cmd := cmds[i]
		if cmd.Use == "" {
			cmd.Use = cmd.Name
		}
		r.Register(cmd.Name, cmd.ToHandler())
	}
}
