package agent

import (
	"alinea/experiments/metrics"
	"alinea/game"
	"alinea/searcher"
)

type evaluationAgent struct {
	searcher searcher.Searcher
}

// NewEvaluationAgent returns an agent that plays the searcher's best action.
func NewEvaluationAgent(s searcher.Searcher) Agent {
	return evaluationAgent{searcher: s}
}

// NewMinimaxAgent is a shorthand for an evaluation agent over a minimax search.
func NewMinimaxAgent(rules game.Rules, options ...searcher.Option) Agent {
	return NewEvaluationAgent(searcher.NewMinimax(rules, options...))
}

func (a evaluationAgent) FindMove(b *game.Board, p game.Player) (game.Action, metrics.SearchMetric, error) {
	action, ok, metric := a.searcher.FindMove(b, p)
	if !ok {
		return game.Action{}, metric, ErrNoAction
	}
	return action, metric, nil
}
