package game

import (
	"fmt"
	"sort"
)

type Phase int

const (
	Placing Phase = iota
	Moving
)

func (ph Phase) String() string {
	if ph == Placing {
		return "Placing"
	}
	return "Moving"
}

// Rules is a rule variant. Both variants share the board, the graph and the
// win lines; they differ in how phases advance, when a position is terminal
// and how it is scored.
type Rules interface {
	Name() string
	// Pieces is the allotment each player places before moving.
	Pieces() int
	// Phase is the phase p is in on b.
	Phase(b *Board, p Player) Phase
	// LegalActions lists what p may do on b, placements by node id, moves by
	// source then destination id. Apply accepts every returned action.
	LegalActions(b *Board, p Player) []Action
	// IsWinner reports whether p holds a whole win line. Only p is checked.
	IsWinner(b *Board, p Player) bool
	// IsTerminal stops the search below b.
	IsTerminal(b *Board) bool
	// IsDraw reports a drawn final position.
	IsDraw(b *Board) bool
	// Evaluate scores b from p's point of view.
	Evaluate(b *Board, p Player) int
}

// CheckWinner returns the player holding a win line, checking PlayerA first, or Empty.
func CheckWinner(r Rules, b *Board) Player {
	for _, p := range []Player{PlayerA, PlayerB} {
		if r.IsWinner(b, p) {
			return p
		}
	}
	return Empty
}

var registry = map[string]func() Rules{
	"phased":      func() Rules { return NewPhasedRules() },
	"interleaved": func() Rules { return NewInterleavedRules() },
}

// NewRules returns the rule variant registered under name.
func NewRules(name string) (Rules, error) {
	create, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown rules %q (known: %v)", name, RuleNames())
	}
	return create(), nil
}

// RuleNames lists the registered rule variants in sorted order.
func RuleNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isWinner is the line check shared by both variants.
func isWinner(b *Board, p Player) bool {
	if !p.Valid() {
		return false
	}
	for _, line := range WinLines {
		if b.LineOwner(line) == p {
			return true
		}
	}
	return false
}

func placements(b *Board, p Player) []Action {
	if b.Remaining(p) <= 0 {
		return nil
	}
	var actions []Action
	for n, occupant := range b.cells {
		if occupant == Empty {
			actions = append(actions, PlaceAt(Node(n)))
		}
	}
	return actions
}

func moves(b *Board, p Player) []Action {
	var actions []Action
	for n, occupant := range b.cells {
		if occupant != p {
			continue
		}
		for _, to := range b.graph.neighbors(Node(n)) {
			if b.cells[to] == Empty {
				actions = append(actions, MoveFrom(Node(n), to))
			}
		}
	}
	return actions
}
