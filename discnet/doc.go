// Package discnet implements the discrimination net that an equation
// table consults to choose which free-theory remainders to try against
// a subject (spec.md §4.7): a per-top-symbol index over the reachable
// equations' immediate children, built once at compile time and walked
// on every rewrite attempt.
//
// Simplification: the reference implementation encodes the net as one
// ternary search tree whose internal nodes chain tests at
// progressively deeper (slot, arg_index) pairs reached by a "slot
// stack" that grows as the walk descends into matched children. This
// package instead builds one balanced, btree-backed index per
// immediate-child position of the top symbol (depth one, matching the
// spec text's own framing: "a ternary search tree over the children of
// a top symbol") and treats each remainder's test positions
// independently rather than chaining them into nested tree levels.
// Correctness does not depend on the net's precision: the net is only
// ever used to narrow the candidate remainder list before
// freetheory.Remainder.FastMatchReplace re-verifies the match in full,
// so an index that returns a superset of the applicable remainders
// (as this one can, for a remainder constrained at more than one
// position) is still correct, only less selective. Deeper constraints
// below the first level are left for FastMatchReplace to check, same
// as before.
package discnet
