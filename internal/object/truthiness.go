package object

// IsTrue implements spec.md §4.C "Truthiness": invalid holders, class
// instances, and class objects are always false; String is non-empty;
// Number is non-zero; Bool is itself.
func IsTrue(h Holder) bool {
	if !h.Valid() {
		return false
	}
	switch v := h.Object().(type) {
	case *String:
		return v.Value != ""
	case *Number:
		return v.Value != 0
	case *Bool:
		return v.Value
	default:
		return false
	}
}
