package searcher

import (
	"testing"

	"alinea/game"

	"github.com/stretchr/testify/require"
)

func boardOf(t *testing.T, pieces int, occupants map[game.Node]game.Player) *game.Board {
	t.Helper()
	cells := make([]game.Player, game.NumNodes)
	for n, p := range occupants {
		cells[n] = p
	}
	b, err := game.NewBoardFromCells(game.StandardGraph(), pieces, cells)
	require.NoError(t, err)
	return b
}

// positions returns a handful of positions reached by alternating searched moves.
func positions(t *testing.T, rules game.Rules, plies int) []*game.Board {
	t.Helper()
	m := NewMinimax(rules, WithDepth(1))
	b := game.NewBoard(game.StandardGraph(), rules.Pieces())
	p := game.PlayerA
	var out []*game.Board
	for i := 0; i < plies && !rules.IsTerminal(b); i++ {
		out = append(out, b.Copy())
		a, ok, _ := m.FindMove(b, p)
		if ok {
			require.NoError(t, game.Apply(b, a, p))
		}
		p = p.Opponent()
	}
	return out
}

func allRules() []game.Rules {
	return []game.Rules{game.NewPhasedRules(), game.NewInterleavedRules()}
}

func TestFindMoveRestoresBoard(t *testing.T) {
	for _, rules := range allRules() {
		t.Run(rules.Name(), func(t *testing.T) {
			for _, b := range positions(t, rules, 12) {
				for _, p := range []game.Player{game.PlayerA, game.PlayerB} {
					before := b.Copy()
					a, ok, _ := NewMinimax(rules).FindMove(b, p)
					require.True(t, b.Equal(before), "search must leave %v untouched", before)
					if !ok {
						continue
					}

					require.True(t, game.ContainsAction(rules.LegalActions(b, p), a), "%v must be legal", a)
					require.NoError(t, game.Apply(b, a, p))
					changed := 0
					for n, occupant := range b.Cells() {
						if occupant != before.Occupant(game.Node(n)) {
							changed++
						}
					}
					if a.Type == game.PlaceAction {
						require.Equal(t, 1, changed)
					} else {
						require.Equal(t, 2, changed)
					}
					game.Undo(b, a)
				}
			}
		})
	}
}

func TestFindMoveIsDeterministic(t *testing.T) {
	for _, rules := range allRules() {
		t.Run(rules.Name(), func(t *testing.T) {
			for _, b := range positions(t, rules, 12) {
				first, _, _ := NewMinimax(rules).FindMove(b, game.PlayerB)
				again, _, _ := NewMinimax(rules).FindMove(b, game.PlayerB)
				parallel, _, _ := NewMinimax(rules, WithGoroutines(4)).FindMove(b, game.PlayerB)

				require.Equal(t, first, again)
				require.Equal(t, first, parallel, "parallel search must pick the same action")
			}
		})
	}
}

func TestFindMoveTakesImmediateWin(t *testing.T) {
	// PlayerB completes the top line with 4->1.
	b := boardOf(t, game.DefaultPieces, map[game.Node]game.Player{
		0: game.PlayerB, 2: game.PlayerB, 4: game.PlayerB,
		3: game.PlayerA, 6: game.PlayerA, 9: game.PlayerA,
	})
	rules := game.NewInterleavedRules()

	a, ok, metric := NewMinimax(rules).FindMove(b, game.PlayerB)
	require.True(t, ok)
	require.Equal(t, game.MoveFrom(4, 1), a)
	require.Equal(t, game.WinScore, metric.Score)
}

func TestFindMoveTiesGoToFirstAction(t *testing.T) {
	// The terminal evaluation scores every opening placement 0 at depth 0.
	b := game.NewBoard(game.StandardGraph(), game.DefaultPieces)
	a, ok, _ := NewMinimax(game.NewInterleavedRules(), WithDepth(0)).FindMove(b, game.PlayerB)
	require.True(t, ok)
	require.Equal(t, game.PlaceAt(0), a)
}

// boxedBoard has every PlayerB piece hemmed in after both sides have placed.
func boxedBoard(t *testing.T) *game.Board {
	t.Helper()
	return boardOf(t, game.DefaultPieces, map[game.Node]game.Player{
		3: game.PlayerB, 6: game.PlayerB, 7: game.PlayerB,
		4: game.PlayerA, 5: game.PlayerA, 8: game.PlayerA,
	})
}

func TestFindMoveWithoutActions(t *testing.T) {
	b := boxedBoard(t)
	for _, rules := range allRules() {
		_, ok, _ := NewMinimax(rules).FindMove(b, game.PlayerB)
		require.False(t, ok, rules.Name())

		_, ok, _ = NewMinimax(rules).FindMove(b, game.PlayerA)
		require.True(t, ok, rules.Name())
	}
}

func TestScore(t *testing.T) {
	t.Run("depth zero is the evaluation", func(t *testing.T) {
		b := boardOf(t, game.DefaultPieces, map[game.Node]game.Player{0: game.PlayerB, 2: game.PlayerB})
		rules := game.NewPhasedRules()
		m := NewMinimax(rules)
		require.Equal(t, game.EvaluateHeuristic(b, game.PlayerB), m.Score(b, game.PlayerB, 0, true))
	})

	t.Run("full board is a drawn leaf", func(t *testing.T) {
		b := boardOf(t, 5, map[game.Node]game.Player{
			0: game.PlayerA, 1: game.PlayerB, 2: game.PlayerA,
			3: game.PlayerB, 4: game.PlayerA, 5: game.PlayerB, 6: game.PlayerA,
			7: game.PlayerB, 8: game.PlayerA, 9: game.PlayerB,
		})
		rules := &game.InterleavedRules{NumPieces: 5, Evaluator: game.EvaluateTerminal}
		require.Equal(t, game.DrawScore, NewMinimax(rules).Score(b, game.PlayerB, 3, true))
	})

	t.Run("won board is a leaf", func(t *testing.T) {
		b := boardOf(t, game.DefaultPieces, map[game.Node]game.Player{7: game.PlayerA, 8: game.PlayerA, 9: game.PlayerA})
		m := NewMinimax(game.NewInterleavedRules(), WithMetrics())
		require.Equal(t, -game.WinScore, m.Score(b, game.PlayerB, 3, true))
	})

	t.Run("a side without actions passes", func(t *testing.T) {
		b := boxedBoard(t)
		before := b.Copy()
		for _, rules := range allRules() {
			NewMinimax(rules).Score(b, game.PlayerB, 3, true)
			require.True(t, b.Equal(before), rules.Name())
		}
	})
}

func TestWithEvaluationFn(t *testing.T) {
	calls := 0
	constant := func(*game.Board, game.Player) int {
		calls++
		return 1
	}
	m := NewMinimax(game.NewPhasedRules(), WithDepth(1), WithEvaluationFn(constant))
	_, ok, metric := m.FindMove(game.NewBoard(game.StandardGraph(), game.DefaultPieces), game.PlayerB)

	require.True(t, ok)
	require.Equal(t, 1, metric.Score)
	require.Equal(t, 10*9, calls, "one leaf per reply")
}

func TestWithMetrics(t *testing.T) {
	m := NewMinimax(game.NewPhasedRules(), WithDepth(1), WithMetrics(), WithGoroutines(3))
	_, _, metric := m.FindMove(game.NewBoard(game.StandardGraph(), game.DefaultPieces), game.PlayerB)

	require.Equal(t, 1, metric.Depth)
	require.Equal(t, 3, metric.Goroutines)
	require.Equal(t, 10+10*9, metric.Nodes)
	require.Equal(t, 10*9, metric.Leaves)
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	m := NewMinimax(game.NewPhasedRules(), WithDepth(-1), WithGoroutines(0), WithEvaluationFn(nil))
	require.Equal(t, DefaultDepth, m.depth)
	require.Equal(t, DefaultGoroutines, m.goroutines)
	require.NotNil(t, m.evaluate)
}
