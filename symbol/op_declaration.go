package symbol

import "github.com/rljacobson/mod2/sortlattice"

// ConstructorStatus records whether a symbol occurrence is known to
// build canonical forms outright (Constructor), is known never to
// (NonConstructor), or is unresolved pending equational analysis
// (Unspecified). For a given argument tuple the compiled diagram takes
// the status of the unique most specific applicable declaration; only
// when several incomparable declarations are minimal are their
// statuses combined with Or, and the result is then Complex.
type ConstructorStatus uint8

const (
	Unspecified    ConstructorStatus = 0
	Constructor    ConstructorStatus = 1
	NonConstructor ConstructorStatus = 2
	Complex        ConstructorStatus = Constructor | NonConstructor
)

// Or combines two ConstructorStatus values, as overloaded operator
// declarations accumulate onto a single symbol's overall status.
func (c ConstructorStatus) Or(other ConstructorStatus) ConstructorStatus {
	return c | other
}

// String renders the status for logging.
func (c ConstructorStatus) String() string {
	switch c {
	case Unspecified:
		return "unspecified"
	case Constructor:
		return "constructor"
	case NonConstructor:
		return "non-constructor"
	case Complex:
		return "complex"
	default:
		return "invalid"
	}
}

// OperatorDeclaration is one overload of a symbol: a fixed sequence of
// argument sorts, a result sort, and the constructor status this
// particular overload contributes (spec.md §3, §4.3).
type OperatorDeclaration struct {
	ArgSorts    []*sortlattice.Sort
	ResultSort  *sortlattice.Sort
	Constructor ConstructorStatus
}

// dominates reports whether d is at least as specific as other at
// every argument position, and strictly more specific at one or more
// — i.e. d's argument sorts are subsorts of other's. This is the
// partial order Compile uses to pick the most specific applicable
// declaration when several match the same actual argument sorts.
func (d OperatorDeclaration) dominates(other OperatorDeclaration) bool {
	strictlyLess := false
	for i := range d.ArgSorts {
		if d.ArgSorts[i] == other.ArgSorts[i] {
			continue
		}
		if !sortlattice.IndexLeqSort(d.ArgSorts[i].IndexWithinKind(), other.ArgSorts[i]) {
			return false
		}
		strictlyLess = true
	}
	return strictlyLess
}
