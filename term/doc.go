// Package term implements Term, the tree-shaped AST used to represent
// patterns (equation, rule, and membership left-hand sides) and
// right-hand-side templates, as distinct from the shared, cyclic,
// garbage-collected DagNode representation of runtime subjects
// (spec.md §3, §4.4). A Term's lifetime is the owning module's; it is
// never touched by the collector.
package term
