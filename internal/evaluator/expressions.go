package evaluator

import (
	"fmt"

	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/object"
)

// evalVariableValue implements spec.md §4.F VariableValue, both the bare-name
// and dotted-path forms: resolve Path[0] in the closure, then walk each
// further component as a field of the previous result's ClassInstance
// Fields closure. If an intermediate component isn't a class instance,
// evaluation stops and returns that value, later components ignored
// (spec.md §4.F, §9 - an observed, preserved quirk).
func (e *Evaluator) evalVariableValue(n *ast.VariableValue, closure *object.Closure) (object.Holder, error) {
	h, err := closure.Get(n.Path[0])
	if err != nil {
		return object.Invalid(), err
	}
	for _, field := range n.Path[1:] {
		inst, ok := h.AsInstance()
		if !ok {
			return h, nil
		}
		h, err = inst.Fields.Get(field)
		if err != nil {
			return object.Invalid(), err
		}
	}
	return h, nil
}

func (e *Evaluator) evalAssignment(n *ast.Assignment, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	val, err := e.Execute(n.Rhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	closure.Set(n.Name, val)
	return val, nil
}

// evalFieldAssignment implements spec.md §4.F FieldAssignment: resolve
// TargetPath to a class instance, set Field in its Fields closure.
func (e *Evaluator) evalFieldAssignment(n *ast.FieldAssignment, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	target, err := e.evalVariableValue(&ast.VariableValue{Path: n.TargetPath}, closure)
	if err != nil {
		return object.Invalid(), err
	}
	inst, ok := target.AsInstance()
	if !ok {
		return object.Invalid(), fmt.Errorf("cannot assign field %q: target is not a class instance", n.Field)
	}
	val, err := e.Execute(n.Rhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	inst.Fields.Set(n.Field, val)
	return val, nil
}

func (e *Evaluator) evalArithmetic(n *ast.Arithmetic, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	lhs, err := e.Execute(n.Lhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	rhs, err := e.Execute(n.Rhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	switch n.Op {
	case ast.OpAdd:
		return object.Add(e, lhs, rhs, ctx)
	case ast.OpSub:
		return object.Sub(lhs, rhs)
	case ast.OpMult:
		return object.Mult(lhs, rhs)
	case ast.OpDiv:
		return object.Div(lhs, rhs)
	default:
		return object.Invalid(), fmt.Errorf("evaluator: unknown arithmetic op %d", n.Op)
	}
}

// evalOr implements spec.md §4.F Or: short-circuits on a truthy left side.
func (e *Evaluator) evalOr(n *ast.Or, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	lhs, err := e.Execute(n.Lhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	if object.IsTrue(lhs) {
		return object.Own(&object.Bool{Value: true}), nil
	}
	rhs, err := e.Execute(n.Rhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	return object.Own(&object.Bool{Value: object.IsTrue(rhs)}), nil
}

// evalAnd implements spec.md §4.F And: both sides are always evaluated, the
// non-short-circuit quirk of §9 note (b), kept as observed.
func (e *Evaluator) evalAnd(n *ast.And, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	lhs, err := e.Execute(n.Lhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	rhs, err := e.Execute(n.Rhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	return object.Own(&object.Bool{Value: object.IsTrue(lhs) && object.IsTrue(rhs)}), nil
}

func (e *Evaluator) evalNot(n *ast.Not, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	arg, err := e.Execute(n.Arg, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	return object.Own(&object.Bool{Value: !object.IsTrue(arg)}), nil
}

func (e *Evaluator) evalComparison(n *ast.Comparison, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	lhs, err := e.Execute(n.Lhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	rhs, err := e.Execute(n.Rhs, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}

	var result bool
	switch n.Op {
	case ast.CmpEq:
		result, err = object.Equal(e, lhs, rhs, ctx)
	case ast.CmpNotEq:
		result, err = object.NotEqual(e, lhs, rhs, ctx)
	case ast.CmpLess:
		result, err = object.Less(e, lhs, rhs, ctx)
	case ast.CmpGreater:
		result, err = object.Greater(e, lhs, rhs, ctx)
	case ast.CmpLessOrEqual:
		result, err = object.LessOrEqual(e, lhs, rhs, ctx)
	case ast.CmpGreaterOrEqual:
		result, err = object.GreaterOrEqual(e, lhs, rhs, ctx)
	default:
		return object.Invalid(), fmt.Errorf("evaluator: unknown comparator %d", n.Op)
	}
	if err != nil {
		return object.Invalid(), err
	}
	return object.Own(&object.Bool{Value: result}), nil
}

// evalStringify implements spec.md §4.F Stringify: an owned String holding
// the printed form of arg. For a class instance it attempts __str__() with
// a DummyContext (no visible output) and falls back to the instance's
// identity string on any failure, per spec.md §7's note that Stringify
// mirrors MethodCall's error-swallowing on __str__.
func (e *Evaluator) evalStringify(n *ast.Stringify, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	val, err := e.Execute(n.Arg, closure, ctx)
	if err != nil {
		return object.Invalid(), err
	}
	return object.Own(&object.String{Value: e.stringify(val)}), nil
}

func (e *Evaluator) stringify(h object.Holder) string {
	if !h.Valid() {
		return "None"
	}
	switch v := h.Object().(type) {
	case *object.Number:
		return fmt.Sprintf("%d", v.Value)
	case *object.String:
		return v.Value
	case *object.Bool:
		if v.Value {
			return "True"
		}
		return "False"
	case *object.Class:
		return fmt.Sprintf("Class %s", v.Name)
	case *object.Instance:
		if v.HasMethod("__str__", 0) {
			result, err := v.Call(e, "__str__", nil, object.Dummy)
			if err == nil {
				return e.stringify(result)
			}
		}
		return v.Identity()
	default:
		return "None"
	}
}
