package agent

import (
	"errors"

	"alinea/experiments/metrics"
	"alinea/game"
)

// ErrNoAction is returned when the player to move has no legal action.
var ErrNoAction = errors.New("no legal action")

type Agent interface {
	// FindMove returns the action to play and performance metrics (if collected) from the search
	FindMove(b *game.Board, p game.Player) (game.Action, metrics.SearchMetric, error)
}
