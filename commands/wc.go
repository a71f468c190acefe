package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/josephlewis42/modoki/core/shell"
)

type wcCount struct {
	bytes int
	lines int
	chars int
	words int

	inSpace bool
}

func (w *wcCount) Write(data []byte) (int, error) {
	for _, c := range data {
		isFirstByte := w.bytes == 0
		w.bytes++

		// Assume UTF-8 characters. Bytes following the leading byte always
		// have MSB of 0b10 indicating they're part of a previous character.
		if c < 0b10000000 || c > 0b10111111 {
			w.chars++
		}

		if c == '\n' {
			w.lines++
		}

		if unicode.IsSpace(rune(c)) {
			w.inSpace = true
		} else {
			if w.inSpace || isFirstByte {
				w.words++
			}
			w.inSpace = false
		}
	}

	return len(data), nil
}

// Wc counts the newlines, words and bytes of its input. There is no
// filesystem so FILE operands always fail.
func Wc(ctx context.Context, io shell.IO, args []string) int {
	cmd := &SimpleCommand{
		Name:  "wc",
		Use:   "wc [-c|-m] [-lw]",
		Short: "Write the number of newlines, words, and bytes in the input.",
	}

	opts := cmd.Flags()
	writeLines := opts.Bool('l', "write the number of newlines")
	writeWords := opts.Bool('w', "write the number of words")
	writeBytes := opts.Bool('c', "write the number of bytes")
	writeChars := opts.Bool('m', "write the number of characters")

	return cmd.Run(io, args, func() int {
		if operands := opts.Args(); len(operands) > 0 {
			io.Write(fmt.Sprintf("wc: %s: No such file or directory\n", operands[0]), shell.Fg(shell.ColorRed))
			return shell.StatusFailure
		}

		var count wcCount
		for finished := false; !finished; {
			input := io.ReadLine(ctx, shell.ReadOptions{})
			if idx := strings.Index(input, shell.EndOfStream); idx >= 0 {
				finished = true
				input = input[:idx]
			}
			count.Write([]byte(input))
		}

		nonePicked := !(*writeLines || *writeWords || *writeBytes || *writeChars)

		var cols []string
		if *writeLines || nonePicked {
			cols = append(cols, fmt.Sprint(count.lines))
		}
		if *writeWords || nonePicked {
			cols = append(cols, fmt.Sprint(count.words))
		}
		if *writeBytes || nonePicked {
			cols = append(cols, fmt.Sprint(count.bytes))
		}
		if *writeChars {
			cols = append(cols, fmt.Sprint(count.chars))
		}

		io.Write(strings.Join(cols, " ")+"\n", shell.Style{})
		return shell.StatusSuccess
	})
}
