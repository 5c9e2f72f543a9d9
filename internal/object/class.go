package object

import (
	"fmt"
	"io"

	"github.com/tinypy-lang/tinypy/internal/ast"
)

// Method is a named, callable member of a Class (spec.md §3).
type Method struct {
	Name   string
	Params []string
	Body   ast.Statement
}

// Class is an immutable record of a class definition (spec.md §3). Parent is
// nil for a root class.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

func (c *Class) Type() Type { return ClassType }

func (c *Class) Print(w io.Writer) { fmt.Fprintf(w, "Class %s", c.Name) }

// GetMethod implements spec.md §4.D: search the class's own methods first in
// declaration order, then - if absent - the parent's own methods, once. It
// does not ascend past the immediate parent (spec.md §9 note (f), an
// observed source limitation this module preserves rather than fixes).
func (c *Class) GetMethod(name string) (*Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	if c.Parent != nil {
		for _, m := range c.Parent.Methods {
			if m.Name == name {
				return m, true
			}
		}
	}
	return nil, false
}
