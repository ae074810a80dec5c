// Package dag provides a small directed graph keyed by string identities, with
// cycle detection and a check that the graph forms exactly one simple path.
//
// The generator uses it to verify step chains: every step type is a node, each
// step links to the type that follows it, and a well-formed chain is a single
// acyclic path that ends at the goal type.
package dag
