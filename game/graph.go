package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Node identifies a position on the board graph.
type Node int

const (
	NumNodes      = 10
	NoNode   Node = -1
)

// Edge is an undirected border between two nodes.
type Edge struct {
	A, B Node
}

// Graph holds the static adjacency of the board. It is never mutated once built.
type Graph struct {
	adjacent [][]Node // Sorted neighbour ids, indexed by node id
	edges    []Edge
}

// Win lines
var (
	TopLine    = [3]Node{0, 1, 2}
	BottomLine = [3]Node{7, 8, 9}
	WinLines   = [][3]Node{TopLine, BottomLine}
)

var standardEdges = []Edge{
	{0, 1}, {1, 2}, // top row
	{1, 4},         // upper spine
	{3, 4}, {4, 5}, // middle
	{5, 6},
	{4, 8},         // lower spine
	{7, 8}, {8, 9}, // bottom row
}

// NewGraph builds a graph over numNodes nodes. Borders are added in both
// directions; duplicate edges are ignored.
func NewGraph(numNodes int, edges []Edge) *Graph {
	g := &Graph{adjacent: make([][]Node, numNodes)}
	for _, e := range edges {
		g.addBorder(e.A, e.B)
	}
	for i := range g.adjacent {
		slices.Sort(g.adjacent[i])
	}
	return g
}

// StandardGraph returns the ten node "I" shaped board.
func StandardGraph() *Graph {
	return NewGraph(NumNodes, standardEdges)
}

func (g *Graph) addBorder(a, b Node) {
	if !g.Valid(a) || !g.Valid(b) || a == b {
		panic(fmt.Sprintf("invalid edge %d-%d", a, b))
	}
	if slices.Contains(g.adjacent[a], b) {
		return
	}
	g.adjacent[a] = append(g.adjacent[a], b)
	g.adjacent[b] = append(g.adjacent[b], a)
	g.edges = append(g.edges, Edge{A: a, B: b})
}

// Size returns the number of nodes.
func (g *Graph) Size() int {
	return len(g.adjacent)
}

// Valid reports whether n is a node of the graph.
func (g *Graph) Valid(n Node) bool {
	return n >= 0 && int(n) < len(g.adjacent)
}

// Neighbors returns the neighbours of n in ascending order. The slice is a copy.
func (g *Graph) Neighbors(n Node) []Node {
	if !g.Valid(n) {
		return nil
	}
	return slices.Clone(g.adjacent[n])
}

func (g *Graph) AreAdjacent(a, b Node) bool {
	if !g.Valid(a) || !g.Valid(b) {
		return false
	}
	return slices.Contains(g.adjacent[a], b)
}

// Edges returns the edges in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Nodes returns every node id in ascending order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, len(g.adjacent))
	for i := range nodes {
		nodes[i] = Node(i)
	}
	return nodes
}

// neighbors is the allocation free variant used on hot paths.
func (g *Graph) neighbors(n Node) []Node {
	return g.adjacent[n]
}
