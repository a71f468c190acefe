package commands

import (
	"context"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
)

// Date returns a command that prints the time from clock.
func Date(clock func() time.Time) shell.Handler {
	return shell.HandlerFunc(func(_ context.Context, io shell.IO, _ []string) int {
		io.Write(clock().Format(time.UnixDate)+"\n", shell.Style{})
		return shell.StatusSuccess
	})
}
