package typesystem

// Join computes the type of a name at a branch join point (spec §3
// "Narrowing rules ... at the join point"). Equal types join to themselves;
// an Option(T) joined with T re-widens to Option(T); anything else that
// disagrees widens to Any rather than erroring, since join happens during
// analysis, not as a hard type-check failure (spec §4.4 reserves
// TNK-TYPE-MISMATCH for the generator's own unification step, see
// error.go).
func Join(a, b Type) Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Equal(b) {
		return a
	}
	if opt, ok := a.(TOption); ok && opt.Inner.Equal(b) {
		return opt
	}
	if opt, ok := b.(TOption); ok && opt.Inner.Equal(a) {
		return opt
	}
	return Any
}

// Unify reports whether two types can be used interchangeably at a single
// call/assignment site, and if not, returns a descriptive mismatch. Any
// unifies with everything (spec §3: Any is the escape hatch for bridge
// values).
func Unify(expected, actual Type) error {
	if expected == nil || actual == nil {
		return nil
	}
	if IsAny(expected) || IsAny(actual) {
		return nil
	}
	if expected.Equal(actual) {
		return nil
	}
	return &MismatchError{Expected: expected, Actual: actual}
}
