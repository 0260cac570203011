package engine

import (
	"alinea/experiments/metrics"
	"alinea/game"
)

type Engine interface {
	// Run plays a game until it ends or the turn limit is reached. The winner
	// is game.Empty for a draw or an unfinished game.
	Run() (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
