package agent

import (
	"sync"

	"alinea/experiments/metrics"
	"alinea/game"

	"golang.org/x/exp/rand"
)

// randomAgent plays a uniformly random legal action. It is the baseline
// opponent for experiments; a fixed seed replays the same game.
type randomAgent struct {
	mu    sync.Mutex
	rules game.Rules
	rng   *rand.Rand
}

func NewRandomAgent(rules game.Rules, seed uint64) Agent {
	return &randomAgent{
		rules: rules,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (a *randomAgent) FindMove(b *game.Board, p game.Player) (game.Action, metrics.SearchMetric, error) {
	actions := a.rules.LegalActions(b, p)
	if len(actions) == 0 {
		return game.Action{}, metrics.SearchMetric{}, ErrNoAction
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
