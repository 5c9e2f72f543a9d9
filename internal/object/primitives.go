package object

import (
	"fmt"
	"io"
)

// Number is a signed 32-bit integer value (spec.md Non-goals: no floats).
type Number struct {
	Value int32
}

func (n *Number) Type() Type { return NumberType }
func (n *Number) Print(w io.Writer) { fmt.Fprintf(w, "%d", n.Value) }

// String is a string value, printed raw with no surrounding quotes.
type String struct {
	Value string
}

func (s *String) Type() Type { return StringType }
func (s *String) Print(w io.Writer) { io.WriteString(w, s.Value) }

// Bool is a boolean value, printed as "True"/"False".
type Bool struct {
	Value bool
}

func (b *Bool) Type() Type { return BoolType }

func (b *Bool) Print(w io.Writer) {
	if b.Value {
		io.WriteString(w, "True")
	} else {
		io.WriteString(w, "False")
	}
}
