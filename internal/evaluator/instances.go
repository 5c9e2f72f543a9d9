package evaluator

import (
	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/object"
)

// evalMethodCall implements spec.md §4.F MethodCall. Errors evaluating the
// object expression or the arguments propagate normally; once the receiver
// is confirmed to be a class instance, any error raised by the callee
// itself is swallowed into the invalid holder - spec.md §7's one
// intentional silencer (§9 note (e)), grounded in SPEC_FULL.md §2.2.
func (e *Evaluator) evalMethodCall(n *ast.MethodCall, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	objHolder, err := e.Execute(n.Object, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	inst, ok := objHolder.AsInstance()
	if !ok {
		return object.Invalid(), nil
	}

	args := make([]object.Holder, 0, len(n.Args))
	for _, argExpr := range n.Args {
		argHolder, err := e.Execute(argExpr, closure, ctx)
		if err != nil {
			return object.Invalid(), err
		}
		args = append(args, argHolder)
	}

	result, callErr := inst.Call(e, n.Method, args, ctx)
	if callErr != nil {
		return object.Invalid(), nil
	}
	return result, nil
}

// evalNewInstance implements spec.md §4.F NewInstance, including the
// aliasing quirk of §9 note (d) / SPEC_FULL.md §4.5: the *first* evaluation
// of a given *ast.NewInstance node allocates the instance and calls
// __init__ (if defined with matching arity); every later evaluation of the
// same node returns a Share of that same cached instance without
// re-running __init__, since the original's node-owned member is
// constructed once.
func (e *Evaluator) evalNewInstance(n *ast.NewInstance, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	if cached, ok := e.instances[n]; ok {
		return object.Share(cached), nil
	}

	classHolder, err := closure.Get(n.Class)
	if err != nil {
		return object.Invalid(), err
	}
	class, ok := classHolder.AsClass()
	if !ok {
		return object.Invalid(), nil
	}

	args := make([]object.Holder, 0, len(n.Args))
	for _, argExpr := range n.Args {
		argHolder, err := e.Execute(argExpr, closure, ctx)
		if err != nil {
			return object.Invalid(), err
		}
		args = append(args, argHolder)
	}

	inst := object.NewClassInstance(class)
	e.instances[n] = inst

	if inst.HasMethod("__init__", len(args)) {
		if _, err := inst.Call(e, "__init__", args, ctx); err != nil {
			return object.Invalid(), err
		}
	}

	return object.Share(inst), nil
}
