package commands

import (
	"context"
	"testing"

	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/shell/shelltest"
	"github.com/stretchr/testify/assert"
)

func TestWc(t *testing.T) {
	cases := map[string]struct {
		args       []string
		stdin      []string
		want       string
		wantStatus int
	}{
		"default": {
			stdin: []string{"Hello,\n", "world !"},
			want:  "1 3 14\n",
		},
		"empty": {
			stdin: []string{},
			want:  "0 0 0\n",
		},
		"lines": {
			args:  []string{"-l"},
			stdin: []string{"a\nb\n"},
			want:  "2\n",
		},
		"chars": {
			args:  []string{"-cm"},
			stdin: []string{"héllo"},
			want:  "6 5\n",
		},
		"file": {
			args:       []string{"foo.txt"},
			stdin:      []string{},
			want:       "<red>wc: foo.txt: No such file or directory\n</red>",
			wantStatus: shell.StatusFailure,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cmd := shelltest.Command(shell.HandlerFunc(Wc), tc.args...)
			cmd.Stdin = tc.stdin

			out := cmd.CombinedOutput(context.Background())

			assert.Equal(t, tc.wantStatus, cmd.ExitStatus)
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestWc_interactive(t *testing.T) {
	term := shelltest.NewTerminal("one two\n", "three"+shell.EndOfInput)
	cmd := shelltest.Command(shell.HandlerFunc(Wc))
	cmd.Terminal = term

	cmd.Run(context.Background())

	assert.Equal(t, "1 3 13\n", term.Output())
}
