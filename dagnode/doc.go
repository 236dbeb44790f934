// Package dagnode implements DagNode, the garbage-collected term
// representation shared by every equational theory (spec.md §3, §4.4).
// A DagNode is a symbol paired with zero or more argument DagNodes,
// plus the flags and cached sort index that make reduction and
// matching cheap.
//
// The reference implementation gives DagNodeCore's args field three
// possible shapes — null, an inline single pointer, or a pointer to a
// heap-allocated vector — to avoid allocating a vector for the very
// common arity-0 and arity-1 cases. A Go slice already represents all
// three with one field (nil, or a one- or N-element slice) at no
// extra runtime cost, so DagNode collapses the distinction to a
// single Args []*DagNode field; see DESIGN.md.
package dagnode
