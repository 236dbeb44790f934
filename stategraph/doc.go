// Package stategraph implements the state-transition graph a rule-driven
// search explores (spec.md §4.8): given a starting DAG, it enumerates
// successor states by applying rules at breadth-first-ordered argument
// positions, hash-consing each result so that reaching the same
// canonical DAG twice reuses the same State.
//
// Grounded on the teacher repo's core.Graph: the same mutex-guarded,
// map-backed adjacency style (here a hash-cons table instead of a
// vertex map, and lazily-grown per-state successor lists instead of a
// materialized edge set, since the reference implementation generates
// successors on demand rather than eagerly).
package stategraph
