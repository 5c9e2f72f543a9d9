package object

import "errors"

// ErrUnknownVariable is returned by Closure.Get on a name miss (spec.md §4.E).
var ErrUnknownVariable = errors.New("Unable to evaluate a variable with the given name")

// Closure is a flat name-to-holder mapping representing one activation frame
// (spec.md §4.E). Each method call gets a fresh Closure; there is no
// parent-closure chain.
type Closure struct {
	vars map[string]Holder
}

// NewClosure returns an empty Closure.
func NewClosure() *Closure {
	return &Closure{vars: make(map[string]Holder)}
}

// Get looks up name, failing with ErrUnknownVariable on a miss.
func (c *Closure) Get(name string) (Holder, error) {
	h, ok := c.vars[name]
	if !ok {
		return Invalid(), ErrUnknownVariable
	}
	return h, nil
}

// Has reports whether name is bound in c.
func (c *Closure) Has(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// Set binds name to h, overwriting any existing binding.
func (c *Closure) Set(name string, h Holder) {
	c.vars[name] = h
}
