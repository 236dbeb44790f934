// Package mod2 is a term-rewriting engine core: sort-typed, hash-consed
// term DAGs rewritten to normal form by equations, and explored by
// rule-driven search over a lazily-expanded state-transition graph.
//
// What it is
//
//	A small Maude-lineage rewriting kernel built from:
//
//	  • Sorts and symbols: a subsort lattice with DSU-based kind
//	    partitioning, and overloaded operator declarations resolved to
//	    their most specific applicable sort at each call.
//	  • Terms and DAGs: a pattern/RHS-template AST (Term) compiled once
//	    per module, and a shared, garbage-collected, hash-consed runtime
//	    representation (DagNode) every reduction and search operates on.
//	  • Matching: free-theory and variable-theory LHS/RHS automata,
//	    dispatched through a per-symbol discrimination net that narrows
//	    candidate equations before a full match/replace attempt.
//	  • Rewriting: exhaustive equation application to normal form
//	    (Reduce), and rule-driven search over successor states
//	    (NewStateTransitionGraph), both running under a RewritingContext
//	    that counts rewrites and carries a cooperative abort flag.
//
// Under the hood, everything is organized as:
//
//	gc/             — mark-sweep arena allocator and root containers
//	sortlattice/    — sort/subsort declarations and kind closure
//	symbol/         — operator declarations, sort diagrams, the symbol registry
//	term/           — pattern and right-hand-side-template AST
//	dagnode/        — the shared, garbage-collected, hash-consed term DAG
//	substitution/   — variable bindings and speculative local bindings
//	subproblem/     — deferred-match continuations (the backtracking glue)
//	freetheory/     — free-theory LHS/RHS match automata
//	variabletheory/ — the degenerate variable-theory automata
//	discnet/        — the per-symbol discrimination net and reduce loop
//	stategraph/     — the lazily-expanded, hash-consed state-transition graph
//	module/         — binds all of the above into a compiled Module
//
// Only the free theory and the variable theory are implemented in
// full; other equational theories plug in wherever freetheory.Compile
// accepts an alien Matcher, the same seam the reference implementation
// reserves for them.
package mod2
