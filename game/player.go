package game

import "fmt"

// Player is the occupant of a node. Empty doubles as "no player".
type Player int8

const (
	Empty Player = iota
	PlayerA
	PlayerB
)

// Human and Computer name the seats: the human always plays PlayerA and moves first.
const (
	Human    = PlayerA
	Computer = PlayerB
)

// Opponent returns the other player, or Empty for Empty.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

func (p Player) String() string {
	switch p {
	case Empty:
		return "Empty"
	case PlayerA:
		return "PlayerA"
	case PlayerB:
		return "PlayerB"
	default:
		return fmt.Sprintf("Player(%d)", int8(p))
	}
}
