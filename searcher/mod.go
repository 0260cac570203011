package searcher

import (
	"alinea/experiments/metrics"
	"alinea/game"
)

// Search defaults
const (
	DefaultDepth      = 3
	DefaultGoroutines = 1
)

// Searcher picks an action for p on b. The board must be unchanged when it returns.
type Searcher interface {
	FindMove(b *game.Board, p game.Player) (game.Action, bool, metrics.SearchMetric)
}
