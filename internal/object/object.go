// Package object implements the runtime value model (spec.md §4.C): the
// polymorphic Object tree, the ObjectHolder handle (Holder here), Closures,
// the Class/Method table, and the type-directed comparison/arithmetic kernel
// (§4.G). It mirrors the teacher's evaluator/object*.go split of one file per
// concern, minus the parts of that model (RuntimeType, Hash) this language
// has no use for.
package object

import (
	"io"

	"github.com/tinypy-lang/tinypy/internal/ast"
)

// Type identifies which of the five non-None Value alternatives (spec.md §3)
// an Object is; None has no Type because it has no Object.
type Type string

const (
	NumberType   Type = "Number"
	StringType   Type = "String"
	BoolType     Type = "Bool"
	ClassType    Type = "Class"
	InstanceType Type = "ClassInstance"
)

// Object is any runtime value. None has no concrete Object - it is modeled
// as the absence of one, see Holder.
type Object interface {
	Type() Type
	Print(w io.Writer)
}

// MethodExecutor runs a method body against a closure and returns its result.
// object can't import evaluator (evaluator imports object), so ClassInstance.Call
// takes this interface instead and evaluator.Evaluator implements it.
type MethodExecutor interface {
	ExecuteMethodBody(body ast.Statement, closure *Closure, ctx Context) (Holder, error)
}

// Context is the abstract collaborator AST evaluation writes output through
// (spec.md §4.F, §6 "Runtime I/O"). Dummy is a sink Context used where
// evaluation must not produce visible output (Stringify on a class instance).
type Context interface {
	OutputStream() io.Writer
}

type dummyContext struct{ sink io.Writer }

func (d dummyContext) OutputStream() io.Writer { return d.sink }

// Dummy is a Context that discards everything written to it.
var Dummy Context = dummyContext{sink: io.Discard}

// NewContext wraps an io.Writer as a Context.
func NewContext(w io.Writer) Context { return dummyContext{sink: w} }

// Holder is the ObjectHolder of spec.md §4.C: a handle to a value, either
// owning or non-owning. Go's garbage collector makes the owned/shared
// distinction purely a documentation contract rather than something this
// type enforces - Own and Share both just wrap the Object. A Holder wrapping
// nil represents both None and "invalid" at once, per spec.md §4.C
// ("Construction from None yields the sentinel invalid holder").
type Holder struct {
	obj Object
}

// Own wraps obj as an owned holder.
func Own(obj Object) Holder { return Holder{obj: obj} }

// Share wraps obj as a non-owning holder referencing a value whose lifetime
// is managed elsewhere (e.g. self, or the instance a NewInstance node caches).
func Share(obj Object) Holder { return Holder{obj: obj} }

// Invalid returns the sentinel invalid/None holder.
func Invalid() Holder { return Holder{} }

// Valid reports whether h holds a value (false for None/invalid).
func (h Holder) Valid() bool { return h.obj != nil }

// Object returns the underlying value, or nil if h is invalid.
func (h Holder) Object() Object { return h.obj }

// AsNumber downcasts h to *Number.
func (h Holder) AsNumber() (*Number, bool) { n, ok := h.obj.(*Number); return n, ok }

// AsString downcasts h to *String.
func (h Holder) AsString() (*String, bool) { s, ok := h.obj.(*String); return s, ok }

// AsBool downcasts h to *Bool.
func (h Holder) AsBool() (*Bool, bool) { b, ok := h.obj.(*Bool); return b, ok }

// AsClass downcasts h to *Class.
func (h Holder) AsClass() (*Class, bool) { c, ok := h.obj.(*Class); return c, ok }

// AsInstance downcasts h to *Instance.
func (h Holder) AsInstance() (*Instance, bool) { inst, ok := h.obj.(*Instance); return inst, ok }

// Print writes h's printed representation to w, per spec.md §4.C "Printing".
// Invalid holders (None) print as "None"; ClassInstance printing that needs
// __str__ dispatch is handled by the evaluator, not here - Print on an
// Instance without that dispatch falls back to its identity string.
func (h Holder) Print(w io.Writer) {
	if !h.Valid() {
		io.WriteString(w, "None")
		return
	}
	h.obj.Print(w)
}
