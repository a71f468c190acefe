package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
)

// StatusInterrupted is returned by commands cut short by cancellation.
const StatusInterrupted = 130

// Sleep pauses for the number of seconds given as its first argument.
func Sleep(ctx context.Context, io shell.IO, args []string) int {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	seconds, err := strconv.Atoi(arg)
	if err != nil {
		io.Write(fmt.Sprintf("%q is not an integer\n", arg), shell.Fg(shell.ColorRed))
		return shell.StatusFailure
	}
	if seconds <= 0 {
		return shell.StatusSuccess
	}

	timer := time.NewTimer(time.Duration(seconds) * time.Second)
	defer timer.Stop()

	select {
	case <-timer.C:
		return shell.StatusSuccess
	case <-ctx.Done():
		return StatusInterrupted
	}
}
