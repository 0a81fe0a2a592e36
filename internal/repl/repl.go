// Package repl implements the interactive prompt spec.md §6 describes:
// read a line, run it through the same scan/parse/optimize/compile/
// interpret pipeline as file execution, print the result, and exit on the
// literal input "exit". Grounded on the teacher's repl/repl.go (banner,
// readline, color) with go-mix's own evaluator swapped for Rox's pipeline.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/roxlang/rox/internal/compiler"
	"github.com/roxlang/rox/internal/optimizer"
	"github.com/roxlang/rox/internal/parser"
	"github.com/roxlang/rox/internal/scanner"
	"github.com/roxlang/rox/internal/vm"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive session: a banner plus the prompt loop.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string

	Trace bool
	Log   *logrus.Logger

	machine *vm.VM
}

// New builds a Repl with Rox's own banner fields.
func New(version, author, license string) *Repl {
	return &Repl{
		Banner:  "ROX",
		Version: version,
		Author:  author,
		Line:    strings.Repeat("-", 48),
		License: license,
		Prompt:  "> ",
	}
}

func (r *Repl) printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", r.Line)
	greenColor.Fprintf(w, "%s\n", r.Banner)
	blueColor.Fprintf(w, "%s\n", r.Line)
	yellowColor.Fprintln(w, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(w, "%s\n", r.Line)
	cyanColor.Fprintf(w, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(w, "%s\n", "Type 'exit' to quit")
	blueColor.Fprintf(w, "%s\n", r.Line)
}

// Start runs the prompt-read-eval-print loop against writer until the user
// types "exit" or sends EOF.
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)
	r.machine = vm.New(r.Trace, r.Log)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(writer, "Good Bye!")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			fmt.Fprintln(writer, "Good Bye!")
			return
		}
		rl.SaveHistory(line)

		r.evalLine(writer, line)
	}
}

func (r *Repl) evalLine(writer io.Writer, line string) {
	defer func() {
		if rec := recover(); rec != nil {
			redColor.Fprintf(writer, "[RUNTIME ERROR] %v\n", rec)
		}
	}()

	toks, err := scanner.ScanTokens(line)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	p := parser.New(toks)
	stmts := p.Parse()
	if p.HasErrors() {
		for _, e := range p.LogErrors() {
			redColor.Fprintf(writer, "%s\n", e)
		}
		redColor.Fprintf(writer, "%s\n", p.Summary())
		return
	}

	optimized := optimizer.Optimize(stmts)
	chunk, err := compiler.Compile(optimized)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	r.machine.Reset()
	result, out := r.machine.Run(chunk)
	switch result {
	case vm.Ok:
		yellowColor.Fprintf(writer, "%s\n", out)
	case vm.RuntimeError:
		redColor.Fprintf(writer, "runtime error evaluating expression\n")
	case vm.CompileError:
		redColor.Fprintf(writer, "compile error evaluating expression\n")
	}
}
