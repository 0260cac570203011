package game

// PhasedRules keeps every player in a shared placement phase until both have
// placed their allotment, then both only move. Positions are scored with the
// heuristic evaluation and the search only stops early on a win.
type PhasedRules struct {
	NumPieces int
	Evaluator Evaluate
}

func NewPhasedRules() *PhasedRules {
	return &PhasedRules{
		NumPieces: DefaultPieces,
		Evaluator: EvaluateHeuristic,
	}
}

func (r *PhasedRules) Name() string {
	return "phased"
}

func (r *PhasedRules) Pieces() int {
	return r.NumPieces
}

// Phase is global: Placing while either player still holds pieces.
func (r *PhasedRules) Phase(b *Board, _ Player) Phase {
	if b.Remaining(PlayerA) > 0 || b.Remaining(PlayerB) > 0 {
		return Placing
	}
	return Moving
}

// LegalActions returns nothing for a player who has finished placing while the
// opponent is still placing.
func (r *PhasedRules) LegalActions(b *Board, p Player) []Action {
	if !p.Valid() {
		return nil
	}
	if r.Phase(b, p) == Placing {
		return placements(b, p)
	}
	return moves(b, p)
}

func (r *PhasedRules) IsWinner(b *Board, p Player) bool {
	return isWinner(b, p)
}

func (r *PhasedRules) IsTerminal(b *Board) bool {
	return CheckWinner(r, b) != Empty
}

func (r *PhasedRules) IsDraw(*Board) bool {
	return false
}

func (r *PhasedRules) Evaluate(b *Board, p Player) int {
	return r.Evaluator(b, p)
}
