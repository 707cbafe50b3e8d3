// Package traversal answers dependency questions over the roadmap template:
// which prerequisites lead to a node, which nodes hold up active or blocked
// work, and which direct prerequisites are still unresolved.
//
// Every function is pure. The graph is read through the Graph interface and
// statuses through a StatusFunc, so callers decide where effective statuses
// come from. Traversals guard against revisits and terminate on any input,
// including graphs that violate the acyclic invariant.
package traversal
