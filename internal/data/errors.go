package data

import "fmt"

// These wrap cerrors-shaped failures without importing internal/cerrors
// directly (cerrors already depends on internal/token, and data must stay
// dependency-free so every other package can depend on it — the same
// leaf-package discipline the teacher applies to its ast package). Callers
// that need a *cerrors.CompilerError translate these with cerrors.Message
// or a dedicated constructor; tests assert on Error() text.

type dataError struct {
	text string
}

func (e *dataError) Error() string { return e.text }

func invalidPathLength(n int) error {
	return &dataError{fmt.Sprintf("path must have at least 2 steps, got %d", n)}
}

func errNotSelector(d Data) error {
	return &dataError{fmt.Sprintf("%s is not a valid selector", d.Kind())}
}

func errZeroIndex() error {
	return &dataError{"index zero is invalid (indexing is 1-based)"}
}

func errKeyNotEligible(d Data) error {
	return &dataError{fmt.Sprintf("%s is not eligible as a map key", d.Kind())}
}

func errKeyExists(key Data) error {
	return &dataError{fmt.Sprintf("key %s already present; use overwrite", key)}
}

func errMergeConflict(a, b Data) error {
	return &dataError{fmt.Sprintf("cannot merge incompatible values %s and %s", a, b)}
}

func errNotAContainer(d Data) error {
	return &dataError{fmt.Sprintf("%s is not a container", d.Kind())}
}

func errIntermediateNotContainer(d Data) error {
	return &dataError{fmt.Sprintf("intermediate path step landed on non-container %s", d.Kind())}
}

func errInvalidCharacterLength(n int) error {
	return &dataError{fmt.Sprintf("character literal must have length 1, got %d", n)}
}
