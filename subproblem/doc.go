// Package subproblem implements the Subproblem interface and its
// three variants (VariableAbstractionSubproblem, SubproblemSequence,
// SortCheckSubproblem) used to enumerate the remaining consistent
// completions of a match once an automaton's first pass leaves some
// choice unresolved (spec.md §4.5).
//
// Solve's contract is a coroutine resume: findFirst=true starts a
// fresh search, findFirst=false asks for the next solution, and the
// implementation is responsible for retaining whatever state it needs
// between calls until it reports no more solutions.
package subproblem
