package object

import "fmt"

// Equal implements spec.md §4.G. Both invalid holders compare equal; one
// invalid and one valid is a type mismatch; same-typed primitives compare by
// payload; class instances dispatch to __eq__ if the left side defines it.
func Equal(executor MethodExecutor, a, b Holder, ctx Context) (bool, error) {
	if !a.Valid() && !b.Valid() {
		return true, nil
	}
	if a.Valid() != b.Valid() {
		return false, typeMismatch("Equal", a, b)
	}

	switch av := a.Object().(type) {
	case *String:
		bv, ok := b.Object().(*String)
		if !ok {
			return false, typeMismatch("Equal", a, b)
		}
		return av.Value == bv.Value, nil
	case *Number:
		bv, ok := b.Object().(*Number)
		if !ok {
			return false, typeMismatch("Equal", a, b)
		}
		return av.Value == bv.Value, nil
	case *Bool:
		bv, ok := b.Object().(*Bool)
		if !ok {
			return false, typeMismatch("Equal", a, b)
		}
		return av.Value == bv.Value, nil
	case *Instance:
		if _, ok := b.Object().(*Instance); ok && av.HasMethod("__eq__", 1) {
			result, err := av.Call(executor, "__eq__", []Holder{b}, ctx)
			if err != nil {
				return false, err
			}
			return IsTrue(result), nil
		}
		return false, typeMismatch("Equal", a, b)
	default:
		return false, typeMismatch("Equal", a, b)
	}
}

// Less implements spec.md §4.G: same-typed primitives compare by "<"; class
// instances dispatch to __lt__ if the left side defines it. There is no
// invalid-holder special case.
func Less(executor MethodExecutor, a, b Holder, ctx Context) (bool, error) {
	if !a.Valid() || !b.Valid() {
		return false, typeMismatch("Less", a, b)
	}

	switch av := a.Object().(type) {
	case *String:
		bv, ok := b.Object().(*String)
		if !ok {
			return false, typeMismatch("Less", a, b)
		}
		return av.Value < bv.Value, nil
	case *Number:
		bv, ok := b.Object().(*Number)
		if !ok {
			return false, typeMismatch("Less", a, b)
		}
		return av.Value < bv.Value, nil
	case *Bool:
		bv, ok := b.Object().(*Bool)
		if !ok {
			return false, typeMismatch("Less", a, b)
		}
		return !av.Value && bv.Value, nil
	case *Instance:
		if _, ok := b.Object().(*Instance); ok && av.HasMethod("__lt__", 1) {
			result, err := av.Call(executor, "__lt__", []Holder{b}, ctx)
			if err != nil {
				return false, err
			}
			return IsTrue(result), nil
		}
		return false, typeMismatch("Less", a, b)
	default:
		return false, typeMismatch("Less", a, b)
	}
}

// NotEqual, Greater, LessOrEqual, GreaterOrEqual are all derived from Equal
// and Less exactly per the formulas in spec.md §4.G.

func NotEqual(executor MethodExecutor, a, b Holder, ctx Context) (bool, error) {
	eq, err := Equal(executor, a, b, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

func Greater(executor MethodExecutor, a, b Holder, ctx Context) (bool, error) {
	lt, err := Less(executor, a, b, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(executor, a, b, ctx)
	if err != nil {
		return false, err
	}
	return !lt && !eq, nil
}

func LessOrEqual(executor MethodExecutor, a, b Holder, ctx Context) (bool, error) {
	gt, err := Greater(executor, a, b, ctx)
	if err != nil {
		return false, err
	}
	return !gt, nil
}

func GreaterOrEqual(executor MethodExecutor, a, b Holder, ctx Context) (bool, error) {
	lt, err := Less(executor, a, b, ctx)
	if err != nil {
		return false, err
	}
	return !lt, nil
}

func typeMismatch(op string, a, b Holder) error {
	return fmt.Errorf("type mismatch in %s: %s vs %s", op, typeName(a), typeName(b))
}

func typeName(h Holder) string {
	if !h.Valid() {
		return "None"
	}
	return string(h.Object().Type())
}
