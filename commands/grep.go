package commands

import (
	"context"
	"regexp"
	"strings"

	"github.com/josephlewis42/modoki/core/shell"
)

// Grep filters its input for chunks containing PATTERN, highlighting every
// occurrence. Input is read until an end-of-stream or end-of-input marker.
func Grep(ctx context.Context, io shell.IO, args []string) int {
	cmd := &SimpleCommand{
		Name:  "grep",
		Use:   "grep [-iv] PATTERN",
		Short: "Search input for text containing a pattern.",
	}

	invert := cmd.Flags().Bool('v', "Select chunks not containing the pattern.")
	ignoreCase := cmd.Flags().Bool('i', "Match without regard to case.")

	return cmd.Run(io, args, func() int {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			return shell.StatusFailure
		}

		expr := regexp.QuoteMeta(args[0])
		if *ignoreCase {
			expr = "(?i)" + expr
		}
		pattern := regexp.MustCompile(expr)

		for finished := false; !finished; {
			input := io.ReadLine(ctx, shell.ReadOptions{})
			if idx := strings.Index(input, shell.EndOfStream); idx >= 0 {
				finished = true
				input = input[:idx]
				if input == "" && *invert {
					continue
				}
				if !strings.HasSuffix(input, "\n") {
					input += "\n"
				}
			}

			matches := pattern.FindAllStringIndex(input, -1)
			switch {
			case *invert:
				if len(matches) == 0 && input != "" {
					io.Write(input, shell.Style{})
				}
			case len(matches) > 0:
				writeHighlighted(io, input, matches)
			}
		}

		return shell.StatusSuccess
	})
}

// writeHighlighted writes text with the given ranges in red.
func writeHighlighted(w shell.Writer, text string, matches [][]int) {
	last := 0
	for _, m := range matches {
		if m[0] > last {
			w.Write(text[last:m[0]], shell.Style{})
		}
		if m[1] > m[0] {
			w.Write(text[m[0]:m[1]], shell.Fg(shell.ColorRed))
		}
		last = m[1]
	}
	if last < len(text) {
		w.Write(text[last:], shell.Style{})
	}
}
