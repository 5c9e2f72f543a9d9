package object

import (
	"fmt"
	"io"
	"sync/atomic"
)

var instanceCounter atomic.Uint64

// Instance is a runtime object whose behavior is defined by a Class and
// whose state is a field Closure (spec.md §3).
type Instance struct {
	Class  *Class
	Fields *Closure
	id     uint64
}

// NewClassInstance allocates an Instance with its own monotonically
// increasing identity (spec.md §9 "Object identity for printing": a stable
// id, not a raw pointer address; see SPEC_FULL.md §4.4 for why this is an
// atomic counter rather than a random google/uuid).
func NewClassInstance(class *Class) *Instance {
	return &Instance{
		Class:  class,
		Fields: NewClosure(),
		id:     instanceCounter.Add(1),
	}
}

func (i *Instance) Type() Type { return InstanceType }

// Print falls back to the instance's identity string. Printing via __str__
// requires executing a method body, which needs a MethodExecutor this type
// doesn't have - that dispatch lives in the evaluator, which calls Identity
// only when no __str__ is defined or its call fails.
func (i *Instance) Print(w io.Writer) { io.WriteString(w, i.Identity()) }

// Identity is the deterministic fallback representation of an instance that
// has no (or a failing) __str__.
func (i *Instance) Identity() string {
	return fmt.Sprintf("<%s instance at #%d>", i.Class.Name, i.id)
}

// HasMethod implements spec.md §4.D: true iff the class (or its one parent
// level) declares a method of that name with matching arity.
func (i *Instance) HasMethod(name string, arity int) bool {
	m, ok := i.Class.GetMethod(name)
	return ok && len(m.Params) == arity
}

// Call implements spec.md §4.F "Method dispatch": validate arity, build a
// fresh closure binding formals and self, execute the body, and return its
// result or the invalid holder if no Return was caught.
func (i *Instance) Call(executor MethodExecutor, name string, args []Holder, ctx Context) (Holder, error) {
	m, ok := i.Class.GetMethod(name)
	if !ok || len(m.Params) != len(args) {
		return Invalid(), fmt.Errorf("no method %q with %d argument(s)", name, len(args))
	}

	closure := NewClosure()
	for idx, param := range m.Params {
		closure.Set(param, args[idx])
	}
	closure.Set("self", Share(i))

	return executor.ExecuteMethodBody(m.Body, closure, ctx)
}
