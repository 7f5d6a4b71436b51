package parser

import "strings"

// Format renders a Command back into input syntax. It is the canonical
// printer used to check that parse -> Format -> parse round-trips to a
// structurally equal AST.
func Format(cmd *Command) string {
	var b strings.Builder
	for i, ps := range cmd.Procs {
		if i > 0 {
			b.WriteString(" | ")
		}
		writeProcessSpec(&b, ps)
	}
	if !cmd.Foreground {
		b.WriteString(" &")
	}
	return b.String()
}

func writeProcessSpec(b *strings.Builder, ps *ProcessSpec) {
	for i, arg := range ps.Argv {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(quoteIfNeeded(arg))
	}
	if ps.RedirIn != "" {
		b.WriteString(" < ")
		b.WriteString(quoteIfNeeded(ps.RedirIn))
	}
	if ps.RedirOut != "" {
		b.WriteString(" > ")
		b.WriteString(quoteIfNeeded(ps.RedirOut))
	}
	if ps.RedirErr != "" {
		b.WriteString(" 2> ")
		b.WriteString(quoteIfNeeded(ps.RedirErr))
	}
}

// quoteIfNeeded wraps a value in double quotes when it is empty or contains
// a byte outside the bare STRING character class, so that re-parsing it
// yields the same logical value.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for i := 0; i < len(s); i++ {
		if !isStringChar(s[i]) {
			return `"` + s + `"`
		}
	}
	return s
}
