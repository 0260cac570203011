package engine

import (
	"fmt"
	"time"

	"alinea/experiments/metrics"
	"alinea/game"
	"alinea/gamemaster"
	"alinea/meta"
	"alinea/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Local plays two agents against each other through a game controller: the
// first agent takes the human seat, the second the computer seat.
type Local struct {
	human      agent.Agent
	controller *gamemaster.Controller
	MaxTurns   int
}

func LocalEngine(agentA, agentB agent.Agent, rules game.Rules) *Local {
	if agentA == nil || agentB == nil {
		panic("need two agents")
	}
	return &Local{
		human: agentA,
		controller: gamemaster.StartGame(
			gamemaster.WithRules(rules),
			gamemaster.WithAgent(agentB),
			gamemaster.WithLogger(log.Logger.Level(zerolog.WarnLevel)),
		),
		MaxTurns: meta.MAX_TURNS,
	}
}

func (e *Local) Controller() *gamemaster.Controller {
	return e.controller
}

// Run executes the game loop until the controller reports an outcome.
func (e *Local) Run() (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	c := e.controller
	gameMetric := metrics.GameMetric{
		ID:             c.ID(),
		StartingPlayer: game.Human,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Debug().Str("game", c.ID()).Msgf("player %s is starting", game.Human)

	for step := 1; step <= e.MaxTurns && !c.CurrentState().Over(); step++ {
		var mm metrics.MoveMetric
		switch c.CurrentState().Turn {
		case game.Human:
			action, search, err := e.human.FindMove(c.Board(), game.Human)
			if err != nil {
				return game.Empty, gameMetric, moveMetrics, fmt.Errorf("step %d: %s failed to find a move: %w", step, game.Human, err)
			}
			if err := c.SubmitAction(action); err != nil {
				return game.Empty, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
			}
			mm = metrics.MoveMetric{Player: game.Human, Action: action, SearchMetric: search}
		case game.Computer:
			if _, err := c.AdvanceComputerTurn(); err != nil {
				return game.Empty, gameMetric, moveMetrics, fmt.Errorf("step %d: %w", step, err)
			}
			history := c.History()
			last := history[len(history)-1]
			mm = metrics.MoveMetric{Player: game.Computer, Action: last.Action, SearchMetric: last.Metric}
		}
		mm.Step = step
		moveMetrics = append(moveMetrics, mm)
	}

	s := c.CurrentState()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = s.Winner
	gameMetric.Drawn = s.Status == gamemaster.Drawn
	gameMetric.TotalMoves = s.Turns

	if !s.Over() {
		log.Debug().Str("game", c.ID()).Msgf("stopped after %d turns (no winner yet)", e.MaxTurns)
	}
	return s.Winner, gameMetric, moveMetrics, nil
}
