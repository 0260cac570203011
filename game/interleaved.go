package game

// InterleavedRules lets each player switch from placing to moving as soon as
// that player's own allotment is on the board. Only final positions are
// scored, and a full board without a winner is a draw.
type InterleavedRules struct {
	NumPieces int
	Evaluator Evaluate
}

func NewInterleavedRules() *InterleavedRules {
	return &InterleavedRules{
		NumPieces: DefaultPieces,
		Evaluator: EvaluateTerminal,
	}
}

func (r *InterleavedRules) Name() string {
	return "interleaved"
}

func (r *InterleavedRules) Pieces() int {
	return r.NumPieces
}

func (r *InterleavedRules) Phase(b *Board, p Player) Phase {
	if b.Remaining(p) > 0 {
		return Placing
	}
	return Moving
}

func (r *InterleavedRules) LegalActions(b *Board, p Player) []Action {
	if !p.Valid() {
		return nil
	}
	if r.Phase(b, p) == Placing {
		return placements(b, p)
	}
	return moves(b, p)
}

func (r *InterleavedRules) IsWinner(b *Board, p Player) bool {
	return isWinner(b, p)
}

func (r *InterleavedRules) IsTerminal(b *Board) bool {
	return CheckWinner(r, b) != Empty || b.IsFull()
}

func (r *InterleavedRules) IsDraw(b *Board) bool {
	return b.IsFull() && CheckWinner(r, b) == Empty
}

func (r *InterleavedRules) Evaluate(b *Board, p Player) int {
	return r.Evaluator(b, p)
}
