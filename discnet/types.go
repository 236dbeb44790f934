package discnet

import (
	"github.com/google/btree"

	"github.com/rljacobson/mod2/freetheory"
)

// Entry is one equation's compiled remainder together with the
// "owise" tag apply_replace_no_owise filters on (spec.md §4.7) and the
// substitution size its LHS/RHS pair was compiled against. Each attempt
// gets its own freshly allocated Substitution (sized per entry) rather
// than sharing one across the whole candidate list, since distinct
// equations on the same symbol can bind different numbers of pattern
// variables.
type Entry struct {
	Remainder        *freetheory.Remainder
	Owise            bool
	SubstitutionSize int
}

// posting records, for one argument position, which entries require
// that position's child to carry a particular top symbol.
type posting struct {
	symbolID int
	indices  []int // indices into Net.entries
}

func lessPosting(a, b posting) bool { return a.symbolID < b.symbolID }

// Net is a compiled discrimination net for one top symbol's equation
// table: entries in source order, plus a per-position index built
// over the entries whose pattern pins a concrete free-theory symbol
// at that position. See doc.go for how this departs from the
// reference implementation's nested ternary tree.
type Net struct {
	entries   []Entry
	universal []int // entries with no depth-1 symbol constraint
	positions map[int]*btree.BTreeG[posting]
	slow      bool
}

// Entries returns the net's compiled entries in source (declaration)
// order.
func (n *Net) Entries() []Entry { return n.entries }

// IsSlow reports whether any entry in the net has freetheory.Slow
// speed, mirroring the reference implementation's net-level slow flag.
func (n *Net) IsSlow() bool { return n.slow }

// IsEmpty reports whether the net was built from zero entries, in
// which case apply_replace should try every remainder (spec.md §4.7
// step 1 — there being nothing to dispatch on).
func (n *Net) IsEmpty() bool { return len(n.entries) == 0 }
