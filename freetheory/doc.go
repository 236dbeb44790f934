// Package freetheory implements the free equational theory's LHS and
// RHS match automata and equation remainders — the only non-variable
// theory specified in full (spec.md §1, §4.6).
//
// Compile walks a pattern term.Term tree once and produces a
// LHSAutomaton that matches subject DagNodes directly against that
// tree (symbol equality at internal nodes, the shared
// substitution.MatchVariable rule at variable leaves, and delegation
// to a registered alien Matcher at any subterm whose symbol is not in
// the free theory). This direct recursive-tree walk is the
// functionally equivalent simplification of the reference
// implementation's compiled slot/argument-index array: the reference
// representation exists to let a single flat loop replay the match
// without recursion, which matters in a language without tail-call
// elimination guarantees; Go's compiler has no such restriction and a
// recursive walk over the (already fully built) pattern tree is both
// simpler and exercises the same per-node work in the same order
// (documented in DESIGN.md).
package freetheory
