package gamemaster

import (
	"fmt"

	"alinea/experiments/metrics"
	"alinea/game"
)

type Status int

const (
	InProgress Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Won:
		return "Won"
	case Drawn:
		return "Drawn"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a read-only copy of the game for rendering.
type Snapshot struct {
	ID           string        `json:"id"`
	Cells        []game.Player `json:"cells"`
	Turn         game.Player   `json:"turn"`
	Phase        game.Phase    `json:"phase"`
	Selected     game.Node     `json:"selected"`
	HasSelection bool          `json:"has_selection"`
	Status       Status        `json:"status"`
	Winner       game.Player   `json:"winner"` // Empty unless Status is Won
	PlacedA      int           `json:"placed_a"`
	PlacedB      int           `json:"placed_b"`
	Turns        int           `json:"turns"`
}

func (s Snapshot) Over() bool {
	return s.Status != InProgress
}

func (s Snapshot) String() string {
	switch s.Status {
	case Won:
		return fmt.Sprintf("game %s: %s won after %d turns", s.ID, s.Winner, s.Turns)
	case Drawn:
		return fmt.Sprintf("game %s: drawn after %d turns", s.ID, s.Turns)
	}
	sel := "none"
	if s.HasSelection {
		sel = fmt.Sprint(s.Selected)
	}
	return fmt.Sprintf("game %s: turn %d, %s to play (%s), placed %d/%d, selected %s",
		s.ID, s.Turns, s.Turn, s.Phase, s.PlacedA, s.PlacedB, sel)
}

// Update is one applied action. Metric is only filled in for computer turns.
type Update struct {
	Player game.Player          `json:"player"`
	Action game.Action          `json:"action"`
	Metric metrics.SearchMetric `json:"-"`
}
