package searcher

import (
	"fmt"
	"math"
	"sync"

	"alinea/experiments/metrics"
	"alinea/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *Minimax)

// Minimax is a fixed depth minimax search. Positions are explored in place:
// every action is applied to the board, searched and undone before its
// sibling is tried.
type Minimax struct {
	rules      game.Rules
	depth      int
	goroutines int
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

func WithDepth(depth int) Option {
	return func(m *Minimax) {
		if depth >= 0 {
			m.depth = depth
		}
	}
}

// WithGoroutines spreads the root actions over several workers, each searching its own board copy.
func WithGoroutines(goroutines int) Option {
	return func(m *Minimax) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithEvaluationFn overrides the evaluation of the rules.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMinimax(rules game.Rules, options ...Option) *Minimax {
	m := &Minimax{ // Default values
		rules:      rules,
		depth:      DefaultDepth,
		goroutines: DefaultGoroutines,
		evaluate:   rules.Evaluate,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *Minimax) Depth() int {
	return m.depth
}

func (m *Minimax) Rules() game.Rules {
	return m.rules
}

// FindMove returns the action with the highest minimax score for p. Ties go to
// the first action in enumeration order. ok is false when p has no legal action.
func (m *Minimax) FindMove(b *game.Board, p game.Player) (action game.Action, ok bool, metric metrics.SearchMetric) {
	m.metrics.Start(m.goroutines, m.depth)

	actions := m.rules.LegalActions(b, p)
	if len(actions) == 0 {
		return game.Action{}, false, m.metrics.Complete(0)
	}

	scores := m.scoreActions(b, p, actions)
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}

	metric = m.metrics.Complete(scores[best])
	log.Debug().
		Str("player", p.String()).
		Str("action", actions[best].String()).
		Int("score", scores[best]).
		Int("candidates", len(actions)).
		Msg("minimax picked action")
	return actions[best], true, metric
}

func (m *Minimax) scoreActions(b *game.Board, p game.Player, actions []game.Action) []int {
	scores := make([]int, len(actions))
	if m.goroutines <= 1 || len(actions) == 1 {
		for i, a := range actions {
			scores[i] = m.scoreAction(b, p, a)
		}
		return scores
	}

	task := make(chan int, len(actions))
	for i := range actions {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for w := 0; w < min(m.goroutines, len(actions)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			local := b.Copy()
			for i := range task {
				scores[i] = m.scoreAction(local, p, actions[i])
			}
		}()
	}

	wg.Wait()
	return scores
}

// scoreAction plays a for p, scores the reply tree and restores b.
func (m *Minimax) scoreAction(b *game.Board, p game.Player, a game.Action) int {
	mustApply(b, a, p)
	defer game.Undo(b, a)
	return m.Score(b, p, m.depth, false)
}

// Score is the minimax value of b for player. The side to move is player when
// maximizing and the opponent otherwise. A side without legal actions passes.
func (m *Minimax) Score(b *game.Board, player game.Player, depth int, maximizing bool) int {
	m.metrics.AddNode()
	if depth <= 0 || m.rules.IsTerminal(b) {
		m.metrics.AddLeaf()
		return m.evaluate(b, player)
	}

	mover := player
	if !maximizing {
		mover = player.Opponent()
	}

	actions := m.rules.LegalActions(b, mover)
	if len(actions) == 0 {
		return m.Score(b, player, depth-1, !maximizing)
	}

	best := math.MaxInt
	if maximizing {
		best = math.MinInt
	}
	for _, a := range actions {
		mustApply(b, a, mover)
		score := m.Score(b, player, depth-1, !maximizing)
		game.Undo(b, a)

		if maximizing && score > best || !maximizing && score < best {
			best = score
		}
	}
	return best
}

// mustApply applies an action taken from LegalActions, which can never be rejected.
func mustApply(b *game.Board, a game.Action, p game.Player) {
	if err := game.Apply(b, a, p); err != nil {
		panic(fmt.Sprintf("legal action %v rejected: %v", a, err))
	}
}
