package commands

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/josephlewis42/modoki/core/shell"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-8][0-8]?[0-8]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// Echo writes its arguments separated by spaces and followed by a newline.
// A leading -e interprets backslash escapes, any other argument is printed
// as is.
func Echo(_ context.Context, io shell.IO, args []string) int {
	escaped := false
	if len(args) > 0 && args[0] == "-e" {
		escaped = true
		args = args[1:]
	}

	var sb strings.Builder
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(" ")
		}

		if escaped {
			arg = unescape(arg)
		}

		sb.WriteString(arg)
	}
	sb.WriteString("\n")

	io.Write(sb.String(), shell.Style{})
	return shell.StatusSuccess
}
