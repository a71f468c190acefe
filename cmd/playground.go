package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/josephlewis42/modoki/core"
	"github.com/josephlewis42/modoki/core/config"
	"github.com/josephlewis42/modoki/core/logger"
	"github.com/josephlewis42/modoki/core/shell"
	"github.com/josephlewis42/modoki/core/terminal/console"
	"github.com/josephlewis42/modoki/core/terminal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var plainPlayground bool

// playgroundCmd runs the shell on the local terminal for testing
var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Run the shell locally without starting a server.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		dir, err := os.MkdirTemp("", "playground")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		playgroundLogger := log.New(cmd.ErrOrStderr(), "[playground] ", 0)
		cfg, err := config.Initialize(dir, playgroundLogger)
		if err != nil {
			return err
		}

		// Differentiate the prompt from a real one.
		cfg.Hostname = "playground"

		logFd, err := cfg.OpenAppLog()
		if err != nil {
			return err
		}
		defer logFd.Close()
		events := logger.NewJSONLinesLogRecorder(logFd).NewSession()

		playgroundLogger.Printf("Logging to: file://%s\n", dir)
		playgroundLogger.Printf("See logs with: tail -f %s\n", filepath.Join(dir, config.AppLogName))
		playgroundLogger.Println(strings.Repeat("=", 80))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		fd := int(os.Stdout.Fd())
		if !plainPlayground && term.IsTerminal(fd) && term.IsTerminal(int(os.Stdin.Fd())) {
			return runTUI(ctx, cfg, events)
		}
		return runConsole(ctx, cfg, events, fd)
	},
}

func runTUI(ctx context.Context, cfg *config.Configuration, events shell.EventRecorder) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t := tui.New(tea.WithAltScreen(), tea.WithContext(ctx))
	go func() {
		defer t.Quit()
		core.NewShell(cfg, t, events, "localhost").Serve(ctx)
	}()

	if err := t.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func runConsole(ctx context.Context, cfg *config.Configuration, events shell.EventRecorder, fd int) error {
	con, err := console.New(console.Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Width: func() int {
			width, _, err := term.GetSize(fd)
			if err != nil {
				return 80
			}
			return width
		},
		Color: term.IsTerminal(fd),
	})
	if err != nil {
		return err
	}
	defer con.Close()

	err = core.NewShell(cfg, con, events, "localhost").Serve(ctx)
	fmt.Fprintln(os.Stdout)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
	playgroundCmd.Flags().BoolVar(&plainPlayground, "plain", false, "Use a line mode terminal instead of the full screen one.")
}
