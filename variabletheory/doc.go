// Package variabletheory implements the degenerate one-node LHS
// automaton and single-instruction RHS automaton for the variable
// theory (spec.md §1: "only the free theory and the variable theory
// are specified in full"). A variable pattern's LHS automaton is just
// the shared substitution.MatchVariable rule; its RHS automaton
// simply looks up the variable's current binding rather than
// constructing anything.
package variabletheory
