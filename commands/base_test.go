package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/shell/shelltest"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestAllCommands(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmdEntry := range ListBuiltinCommands(nil) {
		t.Run(cmdEntry.Name, func(t *testing.T) {
			if cmdEntry.Handler == nil {
				t.Fatal("nil command", cmdEntry.Name)
			}
			assert.False(t, seen[cmdEntry.Name], "duplicate command")
			seen[cmdEntry.Name] = true
		})
	}
}

func TestRegister(t *testing.T) {
	reg := shell.NewRegistry()
	Register(reg, time.Now)

	assert.Equal(t, []string{"date", "echo", "false", "grep", "sleep", "true", "wc"}, reg.Names())
}

func TestSimpleCommand(t *testing.T) {
	newCmd := func() (*SimpleCommand, *bool) {
		cmd := &SimpleCommand{
			Name:  "demo",
			Use:   "demo [-x]",
			Short: "Demonstrate flags.",
		}
		return cmd, cmd.Flags().Bool('x', "set x")
	}

	t.Run("callback", func(t *testing.T) {
		cmd, x := newCmd()
		term := shelltest.NewTerminal()
		status := cmd.Run(shellIO(term), []string{"-x", "rest"}, func() int {
			assert.True(t, *x)
			assert.Equal(t, []string{"rest"}, cmd.Flags().Args())
			return 42
		})

		assert.Equal(t, 42, status)
		assert.Empty(t, term.Writes)
	})

	t.Run("help", func(t *testing.T) {
		cmd, _ := newCmd()
		term := shelltest.NewTerminal()
		status := cmd.Run(shellIO(term), []string{"--help"}, func() int {
			t.Fatal("callback called")
			return 1
		})

		assert.Equal(t, shell.StatusSuccess, status)
		assert.Len(t, term.Writes, 1)
		assert.Contains(t, term.Output(), "usage: demo [-x]\nDemonstrate flags.\n")
	})

	t.Run("bad flag", func(t *testing.T) {
		cmd, _ := newCmd()
		term := shelltest.NewTerminal()
		status := cmd.Run(shellIO(term), []string{"-q"}, func() int {
			t.Fatal("callback called")
			return 1
		})

		assert.Equal(t, shell.StatusFailure, status)
		assert.Equal(t, shell.Fg(shell.ColorRed), term.Writes[0].Style)
		assert.Contains(t, term.Output(), "error: ")
	})

	t.Run("never bail", func(t *testing.T) {
		cmd, _ := newCmd()
		cmd.NeverBail = true
		term := shelltest.NewTerminal()
		status := cmd.Run(shellIO(term), []string{"-q"}, func() int {
			return 7
		})

		assert.Equal(t, 7, status)
		assert.Empty(t, term.Writes)
	})
}

type testIO struct {
	shell.Reader
	shell.Writer
}

func shellIO(term *shelltest.Terminal) shell.IO {
	return testIO{Reader: shell.NewLineBuffer(), Writer: term}
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
	// Stdin holds piped chunks, nil means interactive input.
	Stdin []string
	// ExitStatus is the expected status.
	ExitStatus int
}

func (gts goldenTestSuite) Run(t *testing.T, h shell.Handler) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			cmd := shelltest.Command(h, tc.Args...)
			cmd.Stdin = tc.Stdin
			out := cmd.CombinedOutput(context.Background())

			assert.Equal(t, tc.ExitStatus, cmd.ExitStatus)
			g.Assert(t, tn, out)
		})
	}
}
