package commands

import (
	"context"
	"testing"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/shell/shelltest"
	"github.com/stretchr/testify/assert"
)

func TestSleep(t *testing.T) {
	cases := goldenTestSuite{
		"not-an-integer": {
			Args:       []string{"abc"},
			ExitStatus: shell.StatusFailure,
		},
		"missing": {
			Args:       []string{},
			ExitStatus: shell.StatusFailure,
		},
		"zero": {
			Args: []string{"0"},
		},
	}

	cases.Run(t, shell.HandlerFunc(Sleep))
}

func TestSleep_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	cmd := shelltest.Command(shell.HandlerFunc(Sleep), "60")
	cmd.Run(ctx)

	assert.Equal(t, StatusInterrupted, cmd.ExitStatus)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestSleep_waits(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps for a second")
	}

	start := time.Now()
	cmd := shelltest.Command(shell.HandlerFunc(Sleep), "1")
	cmd.Run(context.Background())

	assert.Equal(t, shell.StatusSuccess, cmd.ExitStatus)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}
