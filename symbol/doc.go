// Package symbol implements per-symbol metadata: arity, attributes,
// operator declarations, the compiled sort diagram and constructor
// diagram that give O(arity) output-sort computation, and the
// equation/membership tables a symbol carries (spec.md §3, §4.3).
//
// A Symbol's identity is its process-unique integer id, assigned by a
// Registry when the symbol is interned — mirroring the teacher repo's
// atomic edge-ID counter in core.Graph, but for long-lived symbol
// identity rather than short-lived edge IDs. Two Symbols are the same
// symbol iff they share an id; names are not required to be globally
// unique across theories, only within the module that declares them
// (spec.md §6).
package symbol
