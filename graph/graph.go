package graph

import (
	"slices"

	"github.com/midbel/tabula/layout"
)

// Graph links formula cells to the formula cells they read. An edge i -> k
// means that node i depends on node k. A Graph is built for one pass and
// then thrown away.
type Graph struct {
	nodes []layout.Position
	index map[layout.Position]int
	adj   [][]int
}

// New creates a graph whose nodes are the given positions. Nodes get their
// index from their place in the list.
func New(nodes []layout.Position) *Graph {
	g := Graph{
		nodes: slices.Clone(nodes),
		index: make(map[layout.Position]int),
		adj:   make([][]int, len(nodes)),
	}
	for i, p := range g.nodes {
		g.index[p] = i
	}
	return &g
}

// Build creates a graph over nodes and adds an edge for each address returned
// by deps that is itself a node of the graph. Other addresses are plain values
// and need no edge.
func Build(nodes []layout.Position, deps func(layout.Position) []layout.Position) *Graph {
	g := New(nodes)
	for _, from := range g.nodes {
		for _, to := range deps(from) {
			g.Link(from, to)
		}
	}
	return g
}

// Link adds an edge from -> to. It does nothing when one of the positions is
// not a node.
func (g *Graph) Link(from, to layout.Position) bool {
	i, ok := g.index[from]
	if !ok {
		return false
	}
	k, ok := g.index[to]
	if !ok {
		return false
	}
	g.adj[i] = append(g.adj[i], k)
	return true
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

func (g *Graph) Node(ix int) layout.Position {
	return g.nodes[ix]
}

func (g *Graph) Index(pos layout.Position) (int, bool) {
	ix, ok := g.index[pos]
	return ix, ok
}

// HasCycle reports whether a node can reach itself.
func (g *Graph) HasCycle() bool {
	var (
		seen  = make([]bool, len(g.nodes))
		stack = make([]bool, len(g.nodes))
	)
	for i := range g.nodes {
		if !seen[i] && g.cyclic(i, seen, stack) {
			return true
		}
	}
	return false
}

func (g *Graph) cyclic(ix int, seen, stack []bool) bool {
	seen[ix] = true
	stack[ix] = true
	for _, k := range g.adj[ix] {
		if stack[k] {
			return true
		}
		if !seen[k] && g.cyclic(k, seen, stack) {
			return true
		}
	}
	stack[ix] = false
	return false
}

// Sort gives the nodes in topological order: a node comes before every node
// it depends on. The result is only meaningful when the graph has no cycle.
func (g *Graph) Sort() []int {
	var (
		seen  = make([]bool, len(g.nodes))
		order = make([]int, 0, len(g.nodes))
	)
	for i := range g.nodes {
		if !seen[i] {
			order = g.visit(i, seen, order)
		}
	}
	slices.Reverse(order)
	return order
}

func (g *Graph) visit(ix int, seen []bool, order []int) []int {
	seen[ix] = true
	for _, k := range g.adj[ix] {
		if !seen[k] {
			order = g.visit(k, seen, order)
		}
	}
	return append(order, ix)
}

// Order gives the positions in evaluation order: every node comes after the
// nodes it depends on.
func (g *Graph) Order() []layout.Position {
	var (
		sorted = g.Sort()
		list   = make([]layout.Position, 0, len(sorted))
	)
	for i := len(sorted) - 1; i >= 0; i-- {
		list = append(list, g.nodes[sorted[i]])
	}
	return list
}
