package dag

import (
	"fmt"
	"sort"
)

// Graph is a set of nodes and the directed links between them. It is not
// safe for concurrent use.
type Graph struct {
	nodes map[string]*node
	// order is insertion order, which keeps traversals deterministic.
	order []string
}

type node struct {
	id    string
	preds map[string]*node
	succs map[string]*node
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds id to the graph. Adding a known id again has no effect.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	g.nodes[id] = &node{id: id, preds: make(map[string]*node), succs: make(map[string]*node)}
	g.order = append(g.order, id)
}

// AddEdge links from to to. Both nodes must exist and differ.
func (g *Graph) AddEdge(from, to string) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", from, to)
	}
	src, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source node not found: %s", from)
	}
	dst, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("destination node not found: %s", to)
	}
	src.succs[to] = dst
	dst.preds[from] = src
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// DetectCycles returns an error naming a node on a cycle, if there is one.
func (g *Graph) DetectCycles() error {
	done := make(map[string]bool, len(g.nodes))
	onStack := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		switch {
		case done[n.id]:
			return nil
		case onStack[n.id]:
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}
		onStack[n.id] = true
		succs := make([]string, 0, len(n.succs))
		for id := range n.succs {
			succs = append(succs, id)
		}
		sort.Strings(succs)
		for _, id := range succs {
			if err := visit(n.succs[id]); err != nil {
				return err
			}
		}
		delete(onStack, n.id)
		done[n.id] = true
		return nil
	}

	for _, id := range g.order {
		if err := visit(g.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the nodes in link order when the graph is exactly one simple
// path: acyclic, with a single start and no node linking to or reached from
// more than one other. Any other shape is an error.
func (g *Graph) Path() ([]string, error) {
	if len(g.nodes) == 0 {
		return nil, nil
	}
	if err := g.DetectCycles(); err != nil {
		return nil, err
	}

	var start *node
	for _, id := range g.order {
		n := g.nodes[id]
		switch {
		case len(n.succs) > 1:
			return nil, fmt.Errorf("node '%s' branches to %d successors", id, len(n.succs))
		case len(n.preds) > 1:
			return nil, fmt.Errorf("node '%s' is reached from %d predecessors", id, len(n.preds))
		case len(n.preds) == 0 && start != nil:
			return nil, fmt.Errorf("graph has more than one start node: '%s' and '%s'", start.id, id)
		case len(n.preds) == 0:
			start = n
		}
	}

	path := make([]string, 0, len(g.nodes))
	for n := start; n != nil; {
		path = append(path, n.id)
		var next *node
		for _, s := range n.succs {
			next = s
		}
		n = next
	}
	return path, nil
}
