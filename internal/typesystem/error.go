package typesystem

import "fmt"

// MismatchError is returned by Unify. Unify is called only from this
// package's tests, so neither the analyzer nor the generator turns a
// MismatchError into a TNK-TYPE-MISMATCH diagnostic.
type MismatchError struct {
	Expected, Actual Type
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected.String(), e.Actual.String())
}
