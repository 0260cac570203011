package game

import "fmt"

// Evaluate scores a board from p's point of view; higher is better for p.
type Evaluate func(b *Board, p Player) int

// Heuristic weights
const (
	LineWeight     = 10
	MobilityWeight = 3
	BlockedWeight  = 5
)

// Terminal scores
const (
	WinScore  = 10
	DrawScore = 0
)

// EvaluateHeuristic rewards p's pieces on the top line, mobility and unblocked
// pieces, and penalises the opponent's pieces on the bottom line, mobility and
// unblocked pieces.
func EvaluateHeuristic(b *Board, p Player) int {
	opponent := p.Opponent()

	aligned := 0
	for _, n := range TopLine {
		if b.Occupant(n) == p {
			aligned++
		}
	}
	opponentAligned := 0
	for _, n := range BottomLine {
		if b.Occupant(n) == opponent {
			opponentAligned++
		}
	}

	mobility, blocked := b.tallyMobility(p)
	opponentMobility, opponentBlocked := b.tallyMobility(opponent)

	return LineWeight*aligned - LineWeight*opponentAligned +
		MobilityWeight*mobility - MobilityWeight*opponentMobility -
		BlockedWeight*blocked + BlockedWeight*opponentBlocked
}

// EvaluateTerminal only distinguishes won, lost and everything else.
func EvaluateTerminal(b *Board, p Player) int {
	switch {
	case isWinner(b, p):
		return WinScore
	case isWinner(b, p.Opponent()):
		return -WinScore
	default:
		return DrawScore
	}
}

var evaluators = map[string]Evaluate{
	"heuristic": EvaluateHeuristic,
	"terminal":  EvaluateTerminal,
}

// EvaluationFn looks an evaluation function up by name.
func EvaluationFn(name string) (Evaluate, error) {
	fn, ok := evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluation %q", name)
	}
	return fn, nil
}

// tallyMobility returns the legal move count of p's pieces and how many of them are blocked.
func (b *Board) tallyMobility(p Player) (moves, blocked int) {
	for n, occupant := range b.cells {
		if occupant != p {
			continue
		}
		m := b.mobility(Node(n))
		moves += m
		if m == 0 {
			blocked++
		}
	}
	return moves, blocked
}

// Blocked returns p's pieces that have no empty neighbour.
func (b *Board) Blocked(p Player) []Node {
	var blocked []Node
	for n, occupant := range b.cells {
		if occupant == p && b.mobility(Node(n)) == 0 {
			blocked = append(blocked, Node(n))
		}
	}
	return blocked
}
