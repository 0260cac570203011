package gamemaster

import (
	"encoding/json"
	"errors"
	"testing"

	"alinea/experiments/metrics"
	"alinea/game"
	"alinea/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// scriptedAgent plays its actions in order.
type scriptedAgent struct {
	actions []game.Action
	err     error
}

func (a *scriptedAgent) FindMove(b *game.Board, p game.Player) (game.Action, metrics.SearchMetric, error) {
	if a.err != nil {
		return game.Action{}, metrics.SearchMetric{}, a.err
	}
	if len(a.actions) == 0 {
		return game.Action{}, metrics.SearchMetric{}, agent.ErrNoAction
	}
	next := a.actions[0]
	a.actions = a.actions[1:]
	return next, metrics.SearchMetric{Depth: 1, Score: 7}, nil
}

func script(nodes ...game.Node) *scriptedAgent {
	a := &scriptedAgent{}
	for _, n := range nodes {
		a.actions = append(a.actions, game.PlaceAt(n))
	}
	return a
}

func newGame(options ...Option) *Controller {
	return StartGame(append([]Option{WithLogger(zerolog.Nop())}, options...)...)
}

// placeAll alternates human placements with computer turns, human first.
func placeAll(t *testing.T, c *Controller, human []game.Node) {
	t.Helper()
	for _, n := range human {
		require.NoError(t, c.SubmitPlacement(n))
		if c.CurrentState().Over() {
			return
		}
		_, err := c.AdvanceComputerTurn()
		require.NoError(t, err)
	}
}

func TestStartGame(t *testing.T) {
	c := newGame()
	s := c.CurrentState()

	require.NotEmpty(t, s.ID)
	require.Equal(t, c.ID(), s.ID)
	require.Equal(t, game.Human, s.Turn)
	require.Equal(t, game.Placing, s.Phase)
	require.Equal(t, InProgress, s.Status)
	require.Equal(t, game.Empty, s.Winner)
	require.False(t, s.HasSelection)
	require.Zero(t, s.PlacedA)
	require.Zero(t, s.PlacedB)
	require.Zero(t, s.Turns)
	require.Equal(t, make([]game.Player, game.NumNodes), s.Cells)
	require.Equal(t, "phased", c.Rules().Name())

	require.NotEqual(t, s.ID, newGame().ID())
}

func TestPlacementOnCenterHub(t *testing.T) {
	c := newGame()

	require.NoError(t, c.SubmitPlacement(1))

	s := c.CurrentState()
	require.Equal(t, game.Human, s.Cells[1])
	require.Equal(t, game.Computer, s.Turn)
	require.Equal(t, 1, s.PlacedA)
	require.NotContains(t, c.Rules().LegalActions(c.Board(), game.Computer), game.PlaceAt(1))
}

func TestCommandsOutOfTurn(t *testing.T) {
	c := newGame(WithAgent(script(3)))

	_, err := c.AdvanceComputerTurn()
	require.ErrorIs(t, err, game.ErrInvalidMove)

	require.ErrorIs(t, c.SubmitSelect(0), game.ErrInvalidMove, "select while placing")
	require.ErrorIs(t, c.SubmitMoveTo(0), game.ErrInvalidMove, "move while placing")
	require.ErrorIs(t, c.SubmitPlacement(game.Node(10)), game.ErrInvalidMove)
	require.Zero(t, c.CurrentState().Turns)

	require.NoError(t, c.SubmitPlacement(0))
	before := c.CurrentState()
	require.ErrorIs(t, c.SubmitPlacement(2), game.ErrInvalidMove, "placing on the computer's turn")
	require.Equal(t, before, c.CurrentState())

	_, err = c.AdvanceComputerTurn()
	require.NoError(t, err)
	require.ErrorIs(t, c.SubmitPlacement(3), game.ErrInvalidMove, "occupied node")
	require.Equal(t, game.Human, c.CurrentState().Turn)
}

func TestSelectAndMove(t *testing.T) {
	c := newGame(WithAgent(script(3, 7, 6)))
	placeAll(t, c, []game.Node{0, 5, 9})

	s := c.CurrentState()
	require.Equal(t, game.Moving, s.Phase)
	require.Equal(t, game.Human, s.Turn)
	require.ErrorIs(t, c.SubmitPlacement(1), game.ErrInvalidMove, "placing while moving")

	t.Run("rejects empty and opponent nodes", func(t *testing.T) {
		require.ErrorIs(t, c.SubmitSelect(1), game.ErrInvalidMove)
		require.ErrorIs(t, c.SubmitSelect(3), game.ErrInvalidMove)
		require.ErrorIs(t, c.SubmitMoveTo(1), game.ErrInvalidMove, "no selection")
		require.False(t, c.CurrentState().HasSelection)
	})

	t.Run("keeps the selection after a non-adjacent destination", func(t *testing.T) {
		require.NoError(t, c.SubmitSelect(0))
		before := c.CurrentState()

		require.ErrorIs(t, c.SubmitMoveTo(2), game.ErrInvalidMove)

		after := c.CurrentState()
		require.Equal(t, before, after)
		require.True(t, after.HasSelection)
		require.Equal(t, game.Node(0), after.Selected)
	})

	t.Run("rejects an occupied destination", func(t *testing.T) {
		require.NoError(t, c.SubmitSelect(5))
		require.ErrorIs(t, c.SubmitMoveTo(6), game.ErrInvalidMove)
		require.Equal(t, game.Node(5), c.CurrentState().Selected)
	})

	t.Run("reselects and moves", func(t *testing.T) {
		require.NoError(t, c.SubmitSelect(9))
		require.NoError(t, c.SubmitMoveTo(8))

		s := c.CurrentState()
		require.Equal(t, game.Human, s.Cells[8])
		require.Equal(t, game.Empty, s.Cells[9])
		require.False(t, s.HasSelection)
		require.Equal(t, game.Computer, s.Turn)
		require.Equal(t, game.MoveFrom(9, 8), c.History()[len(c.History())-1].Action)
	})
}

func TestHumanWins(t *testing.T) {
	c := newGame(WithAgent(script(3, 6)))
	placeAll(t, c, []game.Node{0, 1, 2})

	s := c.CurrentState()
	require.Equal(t, Won, s.Status)
	require.Equal(t, game.Human, s.Winner)
	require.Equal(t, 5, s.Turns)

	require.ErrorIs(t, c.SubmitPlacement(5), game.ErrInvalidMove)
	require.ErrorContains(t, c.SubmitPlacement(5), "game is over")
	_, err := c.AdvanceComputerTurn()
	require.ErrorIs(t, err, game.ErrInvalidMove)
	require.Equal(t, s, c.CurrentState())
}

func TestComputerWins(t *testing.T) {
	c := newGame(WithAgent(script(7, 8, 9)))
	placeAll(t, c, []game.Node{3, 5, 0})

	s := c.CurrentState()
	require.Equal(t, Won, s.Status)
	require.Equal(t, game.Computer, s.Winner)

	history := c.History()
	require.Len(t, history, 6)
	require.Equal(t, game.Human, history[0].Player)
	require.Equal(t, game.Computer, history[5].Player)
	require.Equal(t, game.PlaceAt(9), history[5].Action)
	require.Equal(t, 7, history[5].Metric.Score)
}

func TestForfeitWithoutMoves(t *testing.T) {
	c := newGame(WithAgent(script(3, 6, 7)))
	placeAll(t, c, []game.Node{1, 5, 8})

	require.NoError(t, c.SubmitAction(game.MoveFrom(1, 4)))

	// The computer's pieces on 3, 6 and 7 are boxed in by 4, 5 and 8.
	s := c.CurrentState()
	require.Equal(t, InProgress, s.Status)
	require.Equal(t, game.Human, s.Turn)
	_, err := c.AdvanceComputerTurn()
	require.ErrorIs(t, err, game.ErrInvalidMove)

	require.NoError(t, c.SubmitAction(game.MoveFrom(4, 1)))
	require.Equal(t, game.Computer, c.CurrentState().Turn)
}

func TestDraws(t *testing.T) {
	human := []game.Node{0, 2, 4, 6, 8}
	computer := []game.Node{1, 3, 5, 7, 9}

	t.Run("full board", func(t *testing.T) {
		rules := &game.InterleavedRules{NumPieces: 5, Evaluator: game.EvaluateTerminal}
		c := newGame(WithRules(rules), WithAgent(script(computer...)))
		placeAll(t, c, human)

		s := c.CurrentState()
		require.Equal(t, Drawn, s.Status)
		require.Equal(t, game.Empty, s.Winner)
		require.ErrorIs(t, c.SubmitAction(game.MoveFrom(0, 1)), game.ErrInvalidMove)
	})

	t.Run("nobody can move", func(t *testing.T) {
		rules := &game.PhasedRules{NumPieces: 5, Evaluator: game.EvaluateHeuristic}
		c := newGame(WithRules(rules), WithAgent(script(computer...)))
		placeAll(t, c, human)

		require.Equal(t, Drawn, c.CurrentState().Status)
	})
}

func TestSubmitAction(t *testing.T) {
	c := newGame()

	require.ErrorIs(t, c.SubmitAction(game.MoveFrom(0, 1)), game.ErrInvalidMove)
	require.ErrorIs(t, c.SubmitAction(game.Action{Type: game.ActionType(9)}), game.ErrInvalidMove)
	require.NoError(t, c.SubmitAction(game.PlaceAt(4)))
	require.Equal(t, game.Computer, c.CurrentState().Turn)
}

func TestAdvanceComputerTurn(t *testing.T) {
	t.Run("default agent plays a legal action", func(t *testing.T) {
		c := newGame()
		require.NoError(t, c.SubmitPlacement(1))
		legal := c.Rules().LegalActions(c.Board(), game.Computer)

		s, err := c.AdvanceComputerTurn()
		require.NoError(t, err)
		require.Equal(t, game.Human, s.Turn)
		require.Equal(t, 1, s.PlacedB)
		require.Contains(t, legal, c.History()[1].Action)
	})

	t.Run("agent failure leaves the game untouched", func(t *testing.T) {
		c := newGame(WithAgent(&scriptedAgent{err: errors.New("offline")}))
		require.NoError(t, c.SubmitPlacement(1))
		before := c.CurrentState()

		_, err := c.AdvanceComputerTurn()
		require.ErrorContains(t, err, "offline")
		require.Equal(t, before, c.CurrentState())
	})

	t.Run("illegal proposal is rejected", func(t *testing.T) {
		c := newGame(WithAgent(script(1)))
		require.NoError(t, c.SubmitPlacement(1))

		_, err := c.AdvanceComputerTurn()
		require.ErrorIs(t, err, game.ErrInvalidMove)
		require.Equal(t, game.Computer, c.CurrentState().Turn)
	})
}

func TestSnapshotJSON(t *testing.T) {
	c := newGame()
	require.NoError(t, c.SubmitPlacement(0))

	data, err := json.Marshal(c.CurrentState())
	require.NoError(t, err)
	require.Contains(t, string(data), `"status":"InProgress"`)
	require.Contains(t, string(data), `"placed_a":1`)
	require.Contains(t, c.CurrentState().String(), "PlayerB to play")
}
