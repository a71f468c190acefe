package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/josephlewis42/modoki/core/ttylog"
	"github.com/spf13/cobra"
)

var idleTimeLimit time.Duration

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore the recorded sessions.",
}

// playCommand replays a session at its recorded speed.
var playCommand = &cobra.Command{
	Use:   "play SESSION.cast",
	Short: "Replay a recorded interactive session in the terminal.",
	Long:  `Plays a recorded interactive session back to the current terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		source, closer, err := openLogSource(args[0])
		if err != nil {
			return err
		}
		defer closer.Close()

		sink := ttylog.NewClientOutput(cmd.OutOrStdout())
		sink = ttylog.NewRealTimePlayback(idleTimeLimit, sink)
		return ttylog.Replay(source, sink)
	},
}

// catCommand prints a session without pauses.
var catCommand = &cobra.Command{
	Use:   "cat SESSION.cast",
	Short: "Print full output of recorded log to a terminal.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		source, closer, err := openLogSource(args[0])
		if err != nil {
			return err
		}
		defer closer.Close()

		return ttylog.Replay(source, ttylog.NewClientOutput(cmd.OutOrStdout()))
	},
}

func openLogSource(name string) (ttylog.LogSource, *os.File, error) {
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != ttylog.AsciicastFileExt {
		return nil, nil, fmt.Errorf("unsupported log format %q, want .%s", ext, ttylog.AsciicastFileExt)
	}

	fd, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return ttylog.NewAsciicastLogSource(fd), fd, nil
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(playCommand)
	logsCmd.AddCommand(catCommand)

	// cat doesn't allow idle time
	playCommand.Flags().DurationVarP(&idleTimeLimit, "idle-time-limit", "i", 3*time.Second, "Maximum time output can be idle. (e.g. 3s, 2m, 100ms)")
}
