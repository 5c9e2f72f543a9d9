// Command tinypy runs a tinypy source file (or stdin) end to end: lexer ->
// parser -> evaluator, writing the program's print output to stdout and any
// failure to stderr, grounded on the teacher's cmd/funxy/main.go read-file ->
// run-pipeline -> report-errors shape (SPEC_FULL.md §2.3), drastically
// reduced since this CLI has no module loader, backend selection, or test
// runner to wire up.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tinypy-lang/tinypy/internal/diagnostics"
	"github.com/tinypy-lang/tinypy/internal/evaluator"
	"github.com/tinypy-lang/tinypy/internal/object"
	"github.com/tinypy-lang/tinypy/internal/parser"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	source, err := readSource(args)
	if err != nil {
		fmt.Fprintf(stderr, "tinypy: %s\n", err)
		return 1
	}

	program, err := parser.Parse(source)
	if err != nil {
		reportError(stderr, err)
		return 1
	}

	eval := evaluator.New()
	closure := object.NewClosure()
	ctx := object.NewContext(stdout)

	if err := eval.Run(program, closure, ctx); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

// toDiagnostic is implemented by the typed lexer and parser error types
// (SPEC_FULL.md §2.2); runtime errors from the evaluator have no such
// interface: an unknown-variable error becomes a NameResolution diagnostic
// and any other error an Internal one.
type toDiagnostic interface {
	ToDiagnostic() *diagnostics.Diagnostic
}

func diagnosticFor(err error) *diagnostics.Diagnostic {
	var d toDiagnostic
	if errors.As(err, &d) {
		return d.ToDiagnostic()
	}
	if errors.Is(err, object.ErrUnknownVariable) {
		return diagnostics.New(diagnostics.NameResolution, 0, 0, err.Error())
	}
	return diagnostics.New(diagnostics.Internal, 0, 0, err.Error())
}

// reportError prints err as a diagnostics.Diagnostic, colorized red only
// when stderr is a real terminal (SPEC_FULL.md §2.3), checked the way the
// teacher's builtins_term.go gates terminal-only rendering on go-isatty.
func reportError(stderr io.Writer, err error) {
	d := diagnosticFor(err)
	if f, ok := stderr.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		fmt.Fprintf(stderr, "\x1b[31m%s\x1b[0m\n", d.Error())
		return
	}
	fmt.Fprintln(stderr, d.Error())
}

func readSource(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}
