// Package sortlattice implements the sort/kind lattice described in
// spec.md §3 and §4.2: named sorts related by a subsort partial order,
// partitioned into kinds (connected components), with the closure and
// fast-subsort-test machinery that lets the rest of the core answer
// "is sort A a subsort of sort B" in amortized constant time.
//
// Construction happens in two phases, mirroring the teacher repo's
// build-then-query split (core.Graph mutated freely, then consumed by
// read-only algorithms in dfs/bfs/prim_kruskal): callers declare sorts
// and subsort edges via DeclareSort/DeclareSubsort, then call Close
// once. Close partitions the declared sorts into Kinds using a
// disjoint-set union (grounded on the teacher's prim_kruskal DSU),
// assigns each Kind a topological index ordering via depth-first
// search with pigeonhole cycle detection (grounded on the teacher's
// dfs.TopologicalSort), and computes each Sort's leq_sorts closure and
// fast_compare_index. After Close, the lattice is immutable and safe
// for concurrent read-only use.
package sortlattice
