package core

import (
	"fmt"
	"time"

	"github.com/josephlewis42/modoki/commands"
	"github.com/josephlewis42/modoki/core/config"
	"github.com/josephlewis42/modoki/core/shell"
)

// Prompt returns a prompt of the form "user@host: [~] > ", with an "x" in
// place of the space after a failed command.
func Prompt(hostname string) shell.PromptFunc {
	return func(w shell.Writer, failed bool, user string) {
		w.Write(fmt.Sprintf("%s@%s: ", user, hostname), shell.Fg(shell.ColorLime))
		w.Write("[", shell.Fg(shell.ColorCyan))
		w.Write("~", shell.Style{})
		w.Write("]", shell.Fg(shell.ColorCyan))
		if failed {
			w.Write("x", shell.Fg(shell.ColorRed))
		} else {
			w.Write(" ", shell.Fg(shell.ColorRed))
		}
		w.Write("> ", shell.Style{})
	}
}

// Banner returns the text shown after login.
func Banner(cfg *config.Configuration) string {
	banner := fmt.Sprintf("%s %s", cfg.Name, cfg.Version)
	if cfg.Motd != "" {
		banner += "\n" + cfg.Motd
	}
	return banner
}

// NoOpCommands converts the configured static commands.
func NoOpCommands(cfg *config.Configuration) []commands.NoOpCommand {
	var out []commands.NoOpCommand
	for _, sc := range cfg.StaticCommands {
		out = append(out, commands.NoOpCommand{
			Name:     sc.Name,
			Use:      sc.Name,
			Stdout:   sc.Stdout,
			ExitCode: sc.ExitCode,
		})
	}
	return out
}

// NewShell creates a login shell on term with every command registered.
// events may be nil.
func NewShell(cfg *config.Configuration, term shell.Terminal, events shell.EventRecorder, remoteAddr string) *shell.Shell {
	opts := []shell.Option{
		shell.WithPrompt(Prompt(cfg.Hostname)),
		shell.WithBanner(Banner(cfg)),
		shell.WithAuthenticator(cfg.CheckPassword),
	}
	if events != nil {
		opts = append(opts, shell.WithEventLog(events, remoteAddr))
	}

	sh := shell.New(term, opts...)
	commands.Register(sh, time.Now)
	commands.RegisterNoOps(sh, NoOpCommands(cfg))
	return sh
}
