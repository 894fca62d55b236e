package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/informatter/lumen/compiler"
	"github.com/informatter/lumen/vm"
)

// runCmd executes a script file through the lexer → compiler → vm
// pipeline. Exit codes follow spec.md §6: 0 on success, 64 on
// command-line misuse, non-zero on a compile or runtime failure.
type runCmd struct {
	trace bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a lumen source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and execute a lumen script.
`
}

func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.trace, "trace", false, "log each executed instruction at debug level")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 file not provided\n")
		return subcommands.ExitStatus(64)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 failed to read file: %v\n", err)
		return subcommands.ExitStatus(64)
	}

	fn, err := compiler.New().Compile(string(data))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	machine := vm.New()
	machine.Trace = r.trace
	if err := machine.Interpret(fn); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
