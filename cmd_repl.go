package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"github.com/informatter/lumen/compiler"
	"github.com/informatter/lumen/lexer"
	"github.com/informatter/lumen/token"
	"github.com/informatter/lumen/vm"
)

// replCmd runs an interactive read-eval-print loop over the same
// lexer → compiler → vm pipeline as `run`, reusing one VM (and therefore
// one globals table) across lines so definitions persist between them.
type replCmd struct {
	trace bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive lumen session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive read-eval-print loop.
`
}

func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "log each executed instruction at debug level")
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Println("💥", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	fmt.Println("Welcome to lumen!")

	machine := vm.New()
	machine.Trace = r.trace
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return subcommands.ExitSuccess
		}
		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return subcommands.ExitSuccess
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if !inputComplete(source) {
			continue
		}

		fn, err := compiler.New().Compile(source)
		if err != nil {
			fmt.Println(err)
			buffer.Reset()
			continue
		}

		if err := machine.Interpret(fn); err != nil {
			fmt.Println(err)
		}
		buffer.Reset()
	}
}

// inputComplete reports whether source has balanced braces, so the REPL
// waits for more lines when a user is still typing a multi-line block
// (e.g. `if (x) {`), mirroring the teacher's compiled-REPL look-ahead.
func inputComplete(source string) bool {
	tokens := lexer.New(source).Scan()
	balance := 0
	for _, tok := range tokens {
		switch tok.TokenType {
		case token.LCUR:
			balance++
		case token.RCUR:
			balance--
		}
	}
	return balance <= 0
}
