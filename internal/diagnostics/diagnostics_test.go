package diagnostics

import "testing"

func TestErrorWithPosition(t *testing.T) {
	d := New(Syntax, 3, 7, "unexpected token")
	want := "3:7: syntax: unexpected token"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorWithoutPosition(t *testing.T) {
	d := New(Internal, 0, 0, "boom")
	want := "internal: boom"
	if got := d.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
