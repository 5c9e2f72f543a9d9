package evaluator

import (
	"fmt"
	"io"

	"github.com/tinypy-lang/tinypy/internal/ast"
	"github.com/tinypy-lang/tinypy/internal/object"
)

// evalPrint implements spec.md §4.F Print: evaluate each argument, print
// each separated by a single space, then a newline. Booleans print as
// True/False, None/invalid holders print as None (spec.md §4.C). A String
// argument whose value happens to match a variable name bound in the
// current closure is printed using that variable's value instead of the
// string literal itself - spec.md §9 note (a), an observed source quirk
// kept exactly: PrintObj re-resolves matching strings through the closure.
func (e *Evaluator) evalPrint(n *ast.Print, closure *object.Closure, ctx object.Context) (object.Holder, error) {
	w := ctx.OutputStream()
	for i, arg := range n.Args {
		val, err := e.Execute(arg, closure, ctx)
		if err != nil {
			return object.Invalid(), err
		}
		if i > 0 {
			io.WriteString(w, " ")
		}
		e.printObject(w, val, closure)
	}
	io.WriteString(w, "\n")
	return object.Invalid(), nil
}

// printObject renders h the way spec.md §4.C "Printing" describes:
// instances print through __str__ when one is defined (the same dispatch
// evalStringify uses), falling back to identity otherwise - not
// Holder.Print's bare identity fallback, which has no way to run __str__.
func (e *Evaluator) printObject(w io.Writer, h object.Holder, closure *object.Closure) {
	if s, ok := h.AsString(); ok && closure.Has(s.Value) {
		if resolved, err := closure.Get(s.Value); err == nil {
			h = resolved
		}
	}
	if _, ok := h.AsInstance(); ok {
		io.WriteString(w, e.stringify(h))
		return
	}
	h.Print(w)
}

// evalClassDefinition implements spec.md §4.F ClassDefinition: build the
// Class object from the AST (resolving Parent by name, one level, in the
// enclosing closure), bind it under its own name, and return it as a value.
// A leading "self" parameter is dropped from each method's formal parameters:
// Instance.Call binds self itself and checks arity against the call's
// arguments only.
func (e *Evaluator) evalClassDefinition(n *ast.ClassDefinition, closure *object.Closure) (object.Holder, error) {
	var parent *object.Class
	if n.Parent != "" {
		parentHolder, err := closure.Get(n.Parent)
		if err != nil {
			return object.Invalid(), fmt.Errorf("unknown parent class %q", n.Parent)
		}
		pc, ok := parentHolder.AsClass()
		if !ok {
			return object.Invalid(), fmt.Errorf("%q is not a class", n.Parent)
		}
		parent = pc
	}

	methods := make([]*object.Method, 0, len(n.Methods))
	for _, m := range n.Methods {
		params := m.Params
		if len(params) > 0 && params[0] == "self" {
			params = params[1:]
		}
		methods = append(methods, &object.Method{Name: m.Name, Params: params, Body: m.Body})
	}

	class := &object.Class{Name: n.Name, Methods: methods, Parent: parent}
	val := object.Own(class)
	closure.Set(n.Name, val)
	return val, nil
}
