package game

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ErrInvalidMove is returned for every rejected command. The board is left untouched.
var ErrInvalidMove = errors.New("invalid move")

// DefaultPieces is the number of pieces each player places before moving.
const DefaultPieces = 3

// Board maps every node to its occupant. The graph is shared and immutable;
// only the cells change. Pieces are never captured, so the number of pieces a
// player has placed is the number of nodes they occupy.
type Board struct {
	graph  *Graph
	pieces int      // Allotted pieces per player
	cells  []Player // Occupant per node, indexed by node id
}

// NewBoard returns an empty board on g where each player may place pieces pieces.
func NewBoard(g *Graph, pieces int) *Board {
	if pieces <= 0 {
		pieces = DefaultPieces
	}
	return &Board{
		graph:  g,
		pieces: pieces,
		cells:  make([]Player, g.Size()),
	}
}

// NewBoardFromCells rebuilds a board from a snapshot of occupants.
func NewBoardFromCells(g *Graph, pieces int, cells []Player) (*Board, error) {
	b := NewBoard(g, pieces)
	if len(cells) != g.Size() {
		return nil, fmt.Errorf("board has %d nodes, got %d cells", g.Size(), len(cells))
	}
	for n, p := range cells {
		if p != Empty && !p.Valid() {
			return nil, fmt.Errorf("node %d: unknown occupant %d", n, p)
		}
	}
	copy(b.cells, cells)
	for _, p := range []Player{PlayerA, PlayerB} {
		if b.Placed(p) > b.pieces {
			return nil, fmt.Errorf("%s has %d pieces on the board, allotment is %d", p, b.Placed(p), b.pieces)
		}
	}
	return b, nil
}

func (b *Board) Copy() *Board {
	return &Board{
		graph:  b.graph, // immutable
		pieces: b.pieces,
		cells:  slices.Clone(b.cells),
	}
}

// Equal reports whether both boards hold the same occupants.
func (b *Board) Equal(other *Board) bool {
	return b.pieces == other.pieces && slices.Equal(b.cells, other.cells)
}

func (b *Board) Graph() *Graph {
	return b.graph
}

func (b *Board) Pieces() int {
	return b.pieces
}

// Cells returns a copy of the occupants indexed by node id.
func (b *Board) Cells() []Player {
	return slices.Clone(b.cells)
}

// Occupant returns the occupant of n. Unknown nodes read as Empty.
func (b *Board) Occupant(n Node) Player {
	if !b.graph.Valid(n) {
		return Empty
	}
	return b.cells[n]
}

// Placed returns how many pieces p has on the board.
func (b *Board) Placed(p Player) int {
	count := 0
	for _, occupant := range b.cells {
		if occupant == p {
			count++
		}
	}
	return count
}

// Remaining returns how many pieces p still has to place.
func (b *Board) Remaining(p Player) int {
	return b.pieces - b.Placed(p)
}

// Place puts a piece of p on the empty node n.
func (b *Board) Place(n Node, p Player) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %s cannot place", ErrInvalidMove, p)
	}
	if !b.graph.Valid(n) {
		return fmt.Errorf("%w: node %d does not exist", ErrInvalidMove, n)
	}
	if b.cells[n] != Empty {
		return fmt.Errorf("%w: node %d is occupied", ErrInvalidMove, n)
	}
	if b.Remaining(p) <= 0 {
		return fmt.Errorf("%w: %s has placed all %d pieces", ErrInvalidMove, p, b.pieces)
	}
	b.cells[n] = p
	return nil
}

// Move slides a piece of p from one node to an adjacent empty node.
func (b *Board) Move(from, to Node, p Player) error {
	if !b.graph.Valid(from) || !b.graph.Valid(to) {
		return fmt.Errorf("%w: move %d-%d leaves the board", ErrInvalidMove, from, to)
	}
	if b.cells[from] != p || !p.Valid() {
		return fmt.Errorf("%w: node %d is not held by %s", ErrInvalidMove, from, p)
	}
	if b.cells[to] != Empty {
		return fmt.Errorf("%w: node %d is occupied", ErrInvalidMove, to)
	}
	if !b.graph.AreAdjacent(from, to) {
		return fmt.Errorf("%w: node %d is not adjacent to node %d", ErrInvalidMove, to, from)
	}
	b.cells[from] = Empty
	b.cells[to] = p
	return nil
}

// Unplace reverts a Place. It does no validation and is only meant for search.
func (b *Board) Unplace(n Node) {
	b.cells[n] = Empty
}

// Unmove reverts a Move from -> to. It does no validation and is only meant for search.
func (b *Board) Unmove(from, to Node) {
	b.cells[from], b.cells[to] = b.cells[to], Empty
}

// LegalDestinations returns the empty neighbours of n in ascending order.
func (b *Board) LegalDestinations(n Node) []Node {
	if !b.graph.Valid(n) {
		return nil
	}
	var destinations []Node
	for _, neighbor := range b.graph.neighbors(n) {
		if b.cells[neighbor] == Empty {
			destinations = append(destinations, neighbor)
		}
	}
	return destinations
}

// HasAnyLegalMove reports whether some piece of p can slide to an empty neighbour.
func (b *Board) HasAnyLegalMove(p Player) bool {
	for n, occupant := range b.cells {
		if occupant == p && b.mobility(Node(n)) > 0 {
			return true
		}
	}
	return false
}

// IsFull reports whether no node is empty.
func (b *Board) IsFull() bool {
	return !slices.Contains(b.cells, Empty)
}

// LineOwner returns the player holding every node of line, or Empty.
func (b *Board) LineOwner(line [3]Node) Player {
	owner := b.Occupant(line[0])
	for _, n := range line[1:] {
		if b.Occupant(n) != owner {
			return Empty
		}
	}
	return owner
}

// mobility counts the empty neighbours of n.
func (b *Board) mobility(n Node) int {
	count := 0
	for _, neighbor := range b.graph.neighbors(n) {
		if b.cells[neighbor] == Empty {
			count++
		}
	}
	return count
}

func (b *Board) String() string {
	return fmt.Sprintf("%v", b.cells)
}
