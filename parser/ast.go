// Package parser turns a raw shell input line into a pipeline AST.
//
// The grammar is deliberately small (see lexer.go for the exact token
// rules): a pipeline of simple commands, each with its own optional
// input/output/error redirections, and a trailing '&' that marks the whole
// pipeline as background. Single- or double-quoted regions are the only
// quoting (inside them any byte, metacharacters included, is literal);
// there is no escaping, no variable expansion, no globbing and no command
// sequencing.
package parser

// ProcessSpec is a single command in a pipeline: a program name plus
// arguments, and the redirections that apply to it. A field left empty
// means "inherit the pipeline's current descriptor for that stream".
type ProcessSpec struct {
	Argv     []string
	RedirIn  string
	RedirOut string
	RedirErr string
}

// Command is a full parsed input line: an ordered pipeline of ProcessSpecs
// plus the foreground/background flag carried by a trailing '&'.
type Command struct {
	Procs      []*ProcessSpec
	Foreground bool
}
