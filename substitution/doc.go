// Package substitution implements Substitution, the fixed-length
// variable-index -> DagNode binding array used both as a match result
// and as working state for right-hand-side construction, plus
// LocalBindings, the speculative-binding list used during condition
// evaluation (spec.md §3, §4.5).
package substitution
