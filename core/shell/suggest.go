package shell

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Suggest completes the command name of the last stage of p against names.
//
// Candidates are the names starting with the partial command name, sorted.
// The partial name is extended by the longest prefix every candidate shares
// and the whole pipeline is re-rendered as the new draft line. p isn't
// modified.
func Suggest(p Pipeline, names []string) (candidates []string, draft string) {
	if len(p.Stages) == 0 {
		return nil, ""
	}

	partial := p.Last().Name
	for _, name := range names {
		if strings.HasPrefix(name, partial) {
			candidates = append(candidates, name)
		}
	}
	sort.Strings(candidates)

	stages := make([]Stage, len(p.Stages))
	copy(stages, p.Stages)
	stages[len(stages)-1].Name = commonPrefix(partial, candidates)

	return candidates, Render(stages)
}

// commonPrefix extends partial one rune at a time while every candidate
// still starts with it.
func commonPrefix(partial string, candidates []string) string {
	if len(candidates) == 0 {
		return partial
	}

	matched := partial
	first := candidates[0]
	for len(matched) < len(first) {
		_, size := utf8.DecodeRuneInString(first[len(matched):])
		next := first[:len(matched)+size]
		for _, c := range candidates[1:] {
			if !strings.HasPrefix(c, next) {
				return matched
			}
		}
		matched = next
	}
	return matched
}

// Render serializes stages back into a draft line.
func Render(stages []Stage) string {
	var sb strings.Builder
	for _, stage := range stages {
		sb.WriteString(stage.Name)
		if len(stage.Args) > 0 {
			sb.WriteString(" ")
			sb.WriteString(strings.Join(stage.Args, " "))
		}

		switch stage.After {
		case OpPipe:
			sb.WriteString(" | ")
		default:
			sb.WriteString(string(stage.After))
		}
	}
	return sb.String()
}
