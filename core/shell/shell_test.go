package shell_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/josephlewis42/modoki/commands"
	"github.com/josephlewis42/modoki/core/logger"
	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/shell/shelltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_Run(t *testing.T) {
	term := shelltest.NewTerminal("alice\n", "secret\n", "echo hi\n", "exit\n")
	var events eventLog
	sh := shell.New(term,
		shell.WithBanner("modoki v1"),
		shell.WithEventLog(&events, "10.0.0.1:22"),
	)
	commands.Register(sh, nil)

	err := sh.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, term.Clears)
	assert.Equal(t, "login\nuser: password: <gray>modoki v1\n\n</gray><white>> </white>hi\n<white>> </white>", term.Transcript())
	assert.Equal(t, "alice", sh.Session().User)
	assert.True(t, sh.Session().Killed)

	require.Len(t, term.Reads, 4)
	assert.False(t, term.Reads[0].Hidden)
	assert.True(t, term.Reads[1].Hidden)
	assert.NotNil(t, term.Reads[2].OnInput)

	assert.Equal(t, []logger.EventType{
		logger.EventLoginAttempt,
		logger.EventRunCommand,
		logger.EventRunCommand,
		logger.EventSessionEnd,
	}, events.types())
	assert.Equal(t, logger.NewLoginAttempt("alice", "10.0.0.1:22", logger.ResultSuccess), events[0])
}

func TestShell_Login(t *testing.T) {
	accept := func(user, password string) bool {
		return user == "root" && password == "toor"
	}

	cases := map[string]struct {
		input      []string
		wantOK     bool
		wantOutput string
	}{
		"success": {
			input:      []string{"root\n", "toor\n"},
			wantOK:     true,
			wantOutput: "login\nuser: password: ",
		},
		"wrong password": {
			input:      []string{"root\n", "hunter2\n"},
			wantOutput: "login\nuser: password: Login incorrect\n",
		},
		"detach at user": {
			input:      []string{"ro" + shell.EndOfInput},
			wantOutput: "login\nuser: ",
		},
		"detach at password": {
			input:      []string{"root\n", shell.EndOfInput},
			wantOutput: "login\nuser: password: ",
		},
		"terminal closed": {
			wantOutput: "login\nuser: ",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			term := shelltest.NewTerminal(tc.input...)
			sh := shell.New(term, shell.WithAuthenticator(accept))

			ok := sh.Login(context.Background())

			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantOutput, term.Output())
		})
	}
}

func TestShell_RunTerminalClosed(t *testing.T) {
	term := shelltest.NewTerminal("alice\n", "pw\n", "echo hi\n")
	sh := shell.New(term)
	commands.Register(sh, nil)

	err := sh.Run(context.Background())
	assert.True(t, errors.Is(err, io.EOF))
	assert.True(t, sh.Session().Killed)

	// Serve stops once the terminal is gone.
	err = sh.Serve(context.Background())
	assert.True(t, errors.Is(err, io.EOF))
}

func TestShell_ServeRepeatsLogin(t *testing.T) {
	term := shelltest.NewTerminal("a\n", "pw\n", "exit\n", "b\n", "pw\n", shell.EndOfInput)
	sh := shell.New(term)

	err := sh.Serve(context.Background())

	assert.True(t, errors.Is(err, io.EOF))
	assert.Equal(t, 3, term.Clears)
	assert.Equal(t, "b", sh.Session().User)
}

func TestShell_ServeContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := shell.New(shelltest.NewTerminal()).Serve(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestShell_PromptCycle(t *testing.T) {
	ctx := context.Background()

	t.Run("execute", func(t *testing.T) {
		term := shelltest.NewTerminal("nope\n", "help\n")
		sh := shell.New(term)

		assert.Equal(t, "", sh.PromptCycle(ctx, ""))
		assert.Equal(t, shell.StatusNotFound, sh.Session().Status)
		assert.Equal(t, "", sh.PromptCycle(ctx, ""))
		assert.Equal(t, shell.StatusSuccess, sh.Session().Status)

		assert.Equal(t, shell.Fg(shell.ColorWhite), term.Writes[0].Style)
		assert.Equal(t, "> ", term.Writes[2].Text)
		assert.Equal(t, shell.Fg(shell.ColorRed), term.Writes[2].Style, "prompt after failure")
	})

	t.Run("single completion", func(t *testing.T) {
		term := shelltest.NewTerminal("he"+shell.Completion, "help\n")
		sh := shell.New(term)

		draft := sh.PromptCycle(ctx, "")
		assert.Equal(t, "help", draft)
		assert.Equal(t, "<white>> </white>", term.Transcript(), "no candidates listed")

		sh.PromptCycle(ctx, draft)
		require.Len(t, term.Reads, 2)
		assert.Equal(t, "help", term.Reads[1].Default)
		assert.Equal(t, shell.Fg(shell.ColorCyan), term.Reads[1].DefaultStyle)
	})

	t.Run("ambiguous completion", func(t *testing.T) {
		term := shelltest.NewTerminal("e" + shell.Completion)
		sh := shell.New(term)
		commands.Register(sh, nil)

		draft := sh.PromptCycle(ctx, "")

		assert.Equal(t, "e", draft)
		assert.Equal(t, "> echo  exit\n", term.Output())
		assert.False(t, sh.Session().Killed)
	})

	t.Run("unknown draft", func(t *testing.T) {
		term := shelltest.NewTerminal("zz" + shell.Completion)
		sh := shell.New(term)

		draft := sh.PromptCycle(ctx, "")
		assert.Equal(t, "zz", draft)

		term.Input = []string{"zz\n"}
		sh.PromptCycle(ctx, draft)
		assert.Equal(t, shell.Fg(shell.ColorRed), term.Reads[1].DefaultStyle)
	})

	t.Run("detach", func(t *testing.T) {
		term := shelltest.NewTerminal("echo" + shell.EndOfInput)
		sh := shell.New(term)

		assert.Equal(t, "", sh.PromptCycle(ctx, ""))
		assert.True(t, sh.Session().Killed)
		assert.Equal(t, "> ", term.Output(), "nothing executed")
	})

	t.Run("input style", func(t *testing.T) {
		term := shelltest.NewTerminal("x\n")
		sh := shell.New(term)
		sh.PromptCycle(ctx, "")

		onInput := term.Reads[0].OnInput
		assert.Equal(t, shell.Fg(shell.ColorWhite), onInput(""))
		assert.Equal(t, shell.Fg(shell.ColorRed), onInput("nope"))
		assert.Equal(t, shell.Fg(shell.ColorCyan), onInput("help"))
		assert.Equal(t, shell.Fg(shell.ColorRed), onInput("help | nope"))
	})
}

func TestShell_builtins(t *testing.T) {
	ctx := context.Background()

	t.Run("help", func(t *testing.T) {
		term := shelltest.NewTerminal("help\n")
		sh := shell.New(term, shell.WithPrompt(func(shell.Writer, bool, string) {}))
		sh.PromptCycle(ctx, "")

		want := "available commands list\n" +
			"<cyan>* clear\n</cyan><cyan>* exit\n</cyan><cyan>* help\n</cyan>" +
			"available control operator list\n" +
			"<cyan>* \"&&\"\n</cyan><cyan>* \";\"\n</cyan>" +
			"available pipe list\n" +
			"<cyan>* \"|\"\n</cyan>"
		assert.Equal(t, want, term.Transcript())
	})

	t.Run("clear", func(t *testing.T) {
		term := shelltest.NewTerminal("clear\n")
		sh := shell.New(term)
		sh.PromptCycle(ctx, "")

		assert.Equal(t, 1, term.Clears)
	})

	t.Run("exit stops pipeline", func(t *testing.T) {
		term := shelltest.NewTerminal("exit ; echo after\n")
		sh := shell.New(term)
		commands.Register(sh, nil)
		sh.PromptCycle(ctx, "")

		assert.True(t, sh.Session().Killed)
		assert.Equal(t, "> ", term.Output())
	})

	t.Run("custom prompt", func(t *testing.T) {
		var gotFailed []bool
		var gotUser []string
		prompt := func(w shell.Writer, failed bool, user string) {
			gotFailed = append(gotFailed, failed)
			gotUser = append(gotUser, user)
		}
		term := shelltest.NewTerminal("u\n", "p\n", "false\n", "exit\n")
		sh := shell.New(term, shell.WithPrompt(prompt))
		commands.Register(sh, nil)

		require.NoError(t, sh.Run(ctx))
		assert.Equal(t, []bool{false, true}, gotFailed)
		assert.Equal(t, []string{"u", "u"}, gotUser)
	})
}
