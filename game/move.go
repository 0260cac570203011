package game

import "fmt"

// ActionType represents the kind of action a player can take.
type ActionType int

const (
	PlaceAction ActionType = iota
	MoveAction
)

func (t ActionType) String() string {
	switch t {
	case PlaceAction:
		return "place"
	case MoveAction:
		return "move"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}

// Action is a placement (To only) or a move (From -> To).
type Action struct {
	Type ActionType `json:"type"`
	From Node       `json:"from"`
	To   Node       `json:"to"`
}

// PlaceAt returns the placement of a piece on n.
func PlaceAt(n Node) Action {
	return Action{Type: PlaceAction, From: NoNode, To: n}
}

// MoveFrom returns the move of a piece from one node to another.
func MoveFrom(from, to Node) Action {
	return Action{Type: MoveAction, From: from, To: to}
}

func (a Action) String() string {
	if a.Type == PlaceAction {
		return fmt.Sprintf("place@%d", a.To)
	}
	return fmt.Sprintf("move %d->%d", a.From, a.To)
}

// Apply performs a on b for p, validating before mutating.
func Apply(b *Board, a Action, p Player) error {
	switch a.Type {
	case PlaceAction:
		return b.Place(a.To, p)
	case MoveAction:
		return b.Move(a.From, a.To, p)
	default:
		return fmt.Errorf("%w: unknown action type %d", ErrInvalidMove, a.Type)
	}
}

// Undo reverts an action previously applied with Apply.
func Undo(b *Board, a Action) {
	switch a.Type {
	case PlaceAction:
		b.Unplace(a.To)
	case MoveAction:
		b.Unmove(a.From, a.To)
	}
}

// ContainsAction reports whether a is one of actions.
func ContainsAction(actions []Action, a Action) bool {
	for _, candidate := range actions {
		if candidate.Type != a.Type || candidate.To != a.To {
			continue
		}
		if a.Type == PlaceAction || candidate.From == a.From {
			return true
		}
	}
	return false
}
