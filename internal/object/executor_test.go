package object

import "github.com/tinypy-lang/tinypy/internal/ast"

// fakeExecutor is a minimal MethodExecutor for tests that need to drive
// Instance.Call/dunder dispatch without pulling in internal/evaluator (which
// imports this package, so a real evaluator.Evaluator can't be used here).
// It ignores the AST body and the closure entirely and returns the same
// pre-scripted result (and error) on every call, counting the calls; the
// arith/compare/instance tests use it as the __eq__/__lt__/__add__ stand-in.
type fakeExecutor struct {
	result Holder
	err    error
	calls  int
}

func (f *fakeExecutor) ExecuteMethodBody(body ast.Statement, closure *Closure, ctx Context) (Holder, error) {
	f.calls++
	return f.result, f.err
}
