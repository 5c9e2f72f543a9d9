// Package evaluator implements spec.md §4.F: the tree-walking dispatcher
// that executes AST nodes against a Closure and Context, producing runtime
// values from internal/object. It mirrors the teacher's internal/evaluator
// architecture - a single Eval-style dispatcher keyed on node type, rather
// than virtual Execute methods hung directly off ast nodes - while the AST
// package itself stays pure data (see internal/ast's doc comment).
package evaluator

import (
	"fmt"

	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/object"
)

// returnSignal is the non-local exit spec.md §5 describes for Return,
// modeled as a typed error threaded through ordinary Go error returns
// (SPEC_FULL.md §2.2) rather than a panic - panics are reserved for the one
// case spec.md itself calls a bug: an uncaught Return reaching the driver.
type returnSignal struct {
	value object.Holder
}

func (r *returnSignal) Error() string { return "return outside of a method body" }

// Evaluator holds the per-program state a single Execute call can't: the
// NewInstance aliasing cache (spec.md §9 note (d), SPEC_FULL.md §4.5). It
// implements object.MethodExecutor so internal/object's Add/Equal/Less and
// ClassInstance.Call can invoke dunder methods without importing this
// package (this package already imports object, so that would be a cycle).
type Evaluator struct {
	instances map[*ast.NewInstance]*object.Instance
}

// New returns an Evaluator with a fresh NewInstance aliasing cache.
func New() *Evaluator {
	return &Evaluator{instances: make(map[*ast.NewInstance]*object.Instance)}
}

// Run executes every top-level statement of program against closure in
// order. A *returnSignal escaping all the way to the top is the internal
// invariant violation spec.md §5/§7.6 describes ("uncaught Return is
// undefined behavior ... treated as a program bug"); SPEC_FULL.md §4.6
// makes that a panic here rather than a normal error return.
func (e *Evaluator) Run(program *ast.Program, closure *object.Closure, ctx object.Context) error {
	for _, stmt := range program.Stmts {
		_, err := e.Execute(stmt, closure, ctx)
		if err != nil {
			if _, ok := err.(*returnSignal); ok {
				panic("evaluator: uncaught return at top level")
			}
			return err
		}
	}
	return nil
}

// Execute dispatches node to its semantics (spec.md §4.F, one case per node
// type). It is the single entry point used for every node, statement or
// expression alike, matching spec.md's "Every AST node exposes
// Execute(closure, context) -> ObjectHolder".
func (e *Evaluator) Execute(node ast.Node, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	switch n := node.(type) {
	case *ast.NumericConst:
		return object.Own(&object.Number{Value: n.Value}), nil
	case *ast.StringConst:
		return object.Own(&object.String{Value: n.Value}), nil
	case *ast.BoolConst:
		return object.Own(&object.Bool{Value: n.Value}), nil
	case *ast.NoneConst:
		return object.Invalid(), nil
	case *ast.VariableValue:
		return e.evalVariableValue(n, closure)
	case *ast.Assignment:
		return e.evalAssignment(n, closure, ctx)
	case *ast.FieldAssignment:
		return e.evalFieldAssignment(n, closure, ctx)
	case *ast.Print:
		return e.evalPrint(n, closure, ctx)
	case *ast.Stringify:
		return e.evalStringify(n, closure, ctx)
	case *ast.Arithmetic:
		return e.evalArithmetic(n, closure, ctx)
	case *ast.Or:
		return e.evalOr(n, closure, ctx)
	case *ast.And:
		return e.evalAnd(n, closure, ctx)
	case *ast.Not:
		return e.evalNot(n, closure, ctx)
	case *ast.Comparison:
		return e.evalComparison(n, closure, ctx)
	case *ast.MethodCall:
		return e.evalMethodCall(n, closure, ctx)
	case *ast.NewInstance:
		return e.evalNewInstance(n, closure, ctx)
	case *ast.Compound:
		return e.evalCompound(n, closure, ctx)
	case *ast.Return:
		return e.evalReturn(n, closure, ctx)
	case *ast.MethodBody:
		return e.ExecuteMethodBody(n.Body, closure, ctx)
	case *ast.IfElse:
		return e.evalIfElse(n, closure, ctx)
	case *ast.ClassDefinition:
		return e.evalClassDefinition(n, closure)
	case *ast.ExprStatement:
		return e.Execute(n.Expr, closure, ctx)
	default:
		return object.Invalid(), fmt.Errorf("evaluator: unhandled node type %T", node)
	}
}

// ExecuteMethodBody implements object.MethodExecutor and spec.md §4.F
// "MethodBody": run body inside the non-local-exit barrier that catches a
// Return unwinding out of it. A body that is itself an *ast.MethodBody (as
// stored in object.Method) is unwrapped so the barrier is applied once.
func (e *Evaluator) ExecuteMethodBody(body ast.Statement, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	if mb, ok := body.(*ast.MethodBody); ok {
		body = mb.Body
	}
	_, err := e.Execute(body, closure, ctx)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.value, nil
		}
		return object.Invalid(), err
	}
	return object.Invalid(), nil
}

func (e *Evaluator) evalCompound(n *ast.Compound, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	for _, stmt := range n.Stmts {
		if _, err := e.Execute(stmt, closure, ctx); err != nil {
			return object.Invalid(), err
		}
	}
	return object.Invalid(), nil
}

func (e *Evaluator) evalReturn(n *ast.Return, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	var value object.Holder
	if n.Value != nil {
		v, err := e.Execute(n.Value, closure, ctx)
		if err != nil {
			return object.Invalid(), err
		}
		value = v
	}
	return object.Invalid(), &returnSignal{value: value}
}

func (e *Evaluator) evalIfElse(n *ast.IfElse, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	cond, err := e.Execute(n.Cond, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	if object.IsTrue(cond) {
		return e.Execute(n.Then, closure, ctx)
	}
	if n.Else != nil {
		return e.Execute(n.Else, closure, ctx)
	}
	return object.Invalid(), nil
}
