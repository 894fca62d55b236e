package vm

import (
	"fmt"
	"strings"
)

// RuntimeError is a failure detected while executing bytecode: a type
// error, an undefined global, an arity mismatch, a stack overflow. It
// carries a multiline Trace assembled by walking call frames innermost
// first (spec.md §4.3/§7), one "[line N] in <name>" per frame.
type RuntimeError struct {
	Message string
	Trace   []string
}

func (e RuntimeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "💥 RuntimeError: %s", e.Message)
	for _, line := range e.Trace {
		b.WriteString("\n")
		b.WriteString(line)
	}
	return b.String()
}
