package object

import "fmt"

// Add implements spec.md §4.F: Number+Number sums, String+String concatenates,
// and a class instance on the left falls back to __add__(rhs) if defined.
func Add(executor MethodExecutor, a, b Holder, ctx Context) (Holder, error) {
	switch av := a.Object().(type) {
	case *Number:
		bv, ok := b.Object().(*Number)
		if !ok {
			return Invalid(), typeMismatch("Add", a, b)
		}
		return Own(&Number{Value: av.Value + bv.Value}), nil
	case *String:
		bv, ok := b.Object().(*String)
		if !ok {
			return Invalid(), typeMismatch("Add", a, b)
		}
		return Own(&String{Value: av.Value + bv.Value}), nil
	case *Instance:
		if av.HasMethod("__add__", 1) {
			return av.Call(executor, "__add__", []Holder{b}, ctx)
		}
		return Invalid(), typeMismatch("Add", a, b)
	default:
		return Invalid(), typeMismatch("Add", a, b)
	}
}

// Sub implements spec.md §4.F: numeric subtraction of two Numbers only.
func Sub(a, b Holder) (Holder, error) {
	av, aok := a.Object().(*Number)
	bv, bok := b.Object().(*Number)
	if !aok || !bok {
		return Invalid(), typeMismatch("Sub", a, b)
	}
	return Own(&Number{Value: av.Value - bv.Value}), nil
}

// Mult implements spec.md §4.F: numeric multiplication of two Numbers only.
func Mult(a, b Holder) (Holder, error) {
	av, aok := a.Object().(*Number)
	bv, bok := b.Object().(*Number)
	if !aok || !bok {
		return Invalid(), typeMismatch("Mult", a, b)
	}
	return Own(&Number{Value: av.Value * bv.Value}), nil
}

// Div implements spec.md §4.F: integer division of two Numbers, truncating
// toward zero (Go's / operator on signed integers already does this). A
// zero divisor is the one Domain error kind (spec.md §7.5).
func Div(a, b Holder) (Holder, error) {
	av, aok := a.Object().(*Number)
	bv, bok := b.Object().(*Number)
	if !aok || !bok {
		return Invalid(), typeMismatch("Div", a, b)
	}
	if bv.Value == 0 {
		return Invalid(), fmt.Errorf("division by zero")
	}
	return Own(&Number{Value: av.Value / bv.Value}), nil
}
