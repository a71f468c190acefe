package shell

import "strings"

// Operator joins two stages of a pipeline.
type Operator string

const (
	OpNone     Operator = ""
	OpSequence Operator = ";"
	OpAnd      Operator = "&&"
	OpPipe     Operator = "|"
)

// ControlOperators lists the operators that sequence stages.
var ControlOperators = []Operator{OpAnd, OpSequence}

// PipeOperators lists the operators that connect stage I/O.
var PipeOperators = []Operator{OpPipe}

// Stage is a single command with the operators around it.
type Stage struct {
	Name   string
	Args   []string
	Before Operator
	After  Operator
}

// Pipeline is the ordered list of stages parsed from one line.
type Pipeline struct {
	Stages []Stage
	// HasUnknownCommand is set if any stage names a command that isn't
	// registered.
	HasUnknownCommand bool
}

// Last returns the final stage, every parsed pipeline has at least one.
func (p *Pipeline) Last() *Stage {
	return &p.Stages[len(p.Stages)-1]
}

// tokenize splits a line into alternating keyword and operator tokens,
// starting and ending with a keyword.
func tokenize(line string) []string {
	var (
		tokens  []string
		keyword strings.Builder
	)

	flush := func(op Operator) {
		tokens = append(tokens, keyword.String(), string(op))
		keyword.Reset()
	}

	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '|':
			flush(OpPipe)
		case line[i] == ';':
			flush(OpSequence)
		case line[i] == '&' && i+1 < len(line) && line[i+1] == '&':
			flush(OpAnd)
			i++
		default:
			keyword.WriteByte(line[i])
		}
	}

	return append(tokens, keyword.String())
}

// Parse turns a raw line into a pipeline. Stages whose command isn't in reg
// are kept and flagged through HasUnknownCommand, they fail at execution.
func Parse(line string, reg *Registry) Pipeline {
	tokens := tokenize(strings.ReplaceAll(line, Submit, ""))

	var p Pipeline
	for i := 0; i < len(tokens); i += 2 {
		stage := Stage{Args: []string{}}
		if i > 0 {
			stage.Before = Operator(tokens[i-1])
		}
		if i+1 < len(tokens) {
			stage.After = Operator(tokens[i+1])
		}

		words := strings.Fields(tokens[i])
		if len(words) > 0 {
			stage.Name = words[0]
			stage.Args = words[1:]
		}

		if !reg.Has(stage.Name) {
			p.HasUnknownCommand = true
		}
		p.Stages = append(p.Stages, stage)
	}

	return p
}
