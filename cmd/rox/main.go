// Command rox is the Rox toolchain's entry point: an optional positional
// file argument runs the full scan/parse/optimize/compile/interpret
// pipeline against that file and exits non-zero on any stage failure; with
// no argument it starts the interactive REPL. Built with spf13/cobra,
// grounded on the CLI dependency conneroisu-gix declares in its go.mod,
// in the conventional cobra root-command shape.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/roxlang/rox/internal/compiler"
	"github.com/roxlang/rox/internal/optimizer"
	"github.com/roxlang/rox/internal/parser"
	"github.com/roxlang/rox/internal/repl"
	"github.com/roxlang/rox/internal/rlog"
	"github.com/roxlang/rox/internal/scanner"
	"github.com/roxlang/rox/internal/vm"
)

var (
	traceFlag    bool
	logLevelFlag string
)

const (
	version = "0.1.0"
	author  = "roxlang"
	license = "MIT"
)

func main() {
	root := &cobra.Command{
		Use:   "rox [path]",
		Short: "Rox language scanner, parser, optimizer, and bytecode VM",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	root.Flags().BoolVar(&traceFlag, "trace", false, "disassemble and dump the stack before every instruction")
	root.Flags().StringVar(&logLevelFlag, "log-level", "info", "log level: error, warn, info, debug")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := rlog.New(logLevelFlag)

	if len(args) == 0 {
		r := repl.New(version, author, license)
		r.Trace = traceFlag
		r.Log = log
		r.Start(os.Stdout)
		return nil
	}

	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if !runSource(string(src), log) {
		os.Exit(1)
	}
	return nil
}

// runSource drives a single source string through the full pipeline,
// logging failures at each stage and returning false if any stage fails.
func runSource(src string, log *logrus.Logger) bool {
	toks, err := scanner.ScanTokens(src)
	if err != nil {
		log.Errorf("%s", err)
		return false
	}

	p := parser.New(toks)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.LogErrors() {
			log.Errorf("%s", e)
		}
		log.Errorf("%s", p.Summary())
		return false
	}

	optimized := optimizer.Optimize(stmts)
	chunk, err := compiler.Compile(optimized)
	if err != nil {
		log.Errorf("%s", err)
		return false
	}

	m := vm.New(traceFlag, log)
	result, out := m.Run(chunk)
	switch result {
	case vm.Ok:
		fmt.Println(out)
		return true
	case vm.RuntimeError:
		log.Errorf("runtime error")
		return false
	default:
		log.Errorf("compile error")
		return false
	}
}
