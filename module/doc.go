// Package module binds the matching/rewriting core into spec.md §6's
// external interface: a compiled Module (sorts, symbols, equations,
// rules, memberships, root term) and an InterpreterPolicy the driver
// consults for tracing and GC-stats knobs, plus the package-level
// entry points Reduce, TermToDag, and NewStateTransitionGraph.
//
// Module owns the lazy symbol-to-discrimination-net cache its Reduce
// consults and the concrete Equation/Rule/Membership types that implement
// symbol.EquationRef, stategraph.Rule, and symbol.MembershipRef
// respectively, closing the dependency loop the lower packages leave
// open by design (spec.md §2's layering).
package module
