package gamemaster

import (
	"errors"
	"fmt"

	"alinea/game"
	"alinea/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Controller owns the authoritative board of one game and drives its turns.
// The human always plays game.Human and moves first; the computer plays
// game.Computer through its agent. A Controller is not safe for concurrent use.
type Controller struct {
	id       string
	rules    game.Rules
	computer agent.Agent
	logger   zerolog.Logger
	hasLog   bool

	board    *game.Board
	turn     game.Player
	selected game.Node
	status   Status
	winner   game.Player
	history  []Update
}

type Option func(c *Controller)

// WithRules selects the rule variant (default phased).
func WithRules(rules game.Rules) Option {
	return func(c *Controller) {
		c.rules = rules
	}
}

// WithAgent sets the computer's agent (default a minimax agent over the rules).
func WithAgent(a agent.Agent) Option {
	return func(c *Controller) {
		c.computer = a
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
		c.hasLog = true
	}
}

// StartGame returns a fresh game: empty board, human to move.
func StartGame(options ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		turn:     game.Human,
		selected: game.NoNode,
		status:   InProgress,
		winner:   game.Empty,
	}
	for _, opt := range options {
		opt(c)
	}

	if c.rules == nil {
		c.rules = game.NewPhasedRules()
	}
	if c.computer == nil {
		c.computer = agent.NewMinimaxAgent(c.rules)
	}
	if !c.hasLog {
		c.logger = log.Logger
	}
	c.logger = c.logger.With().Str("game", c.id).Logger()
	c.board = game.NewBoard(game.StandardGraph(), c.rules.Pieces())

	c.logger.Debug().Str("rules", c.rules.Name()).Msg("game started")
	return c
}

func (c *Controller) ID() string {
	return c.id
}

func (c *Controller) Rules() game.Rules {
	return c.rules
}

// Board returns a copy of the current board.
func (c *Controller) Board() *game.Board {
	return c.board.Copy()
}

// History returns the applied actions in order.
func (c *Controller) History() []Update {
	return append([]Update(nil), c.history...)
}

func (c *Controller) CurrentState() Snapshot {
	return Snapshot{
		ID:           c.id,
		Cells:        c.board.Cells(),
		Turn:         c.turn,
		Phase:        c.rules.Phase(c.board, c.turn),
		Selected:     c.selected,
		HasSelection: c.selected != game.NoNode,
		Status:       c.status,
		Winner:       c.winner,
		PlacedA:      c.board.Placed(game.PlayerA),
		PlacedB:      c.board.Placed(game.PlayerB),
		Turns:        len(c.history),
	}
}

// SubmitPlacement places a human piece on n during the human's placement turn.
func (c *Controller) SubmitPlacement(n game.Node) error {
	if err := c.humanTurn(game.Placing); err != nil {
		return err
	}
	return c.apply(game.PlaceAt(n), game.Human, Update{})
}

// SubmitSelect picks the human piece to move. Selecting again replaces the
// previous selection.
func (c *Controller) SubmitSelect(n game.Node) error {
	if err := c.humanTurn(game.Moving); err != nil {
		return err
	}
	if !c.board.Graph().Valid(n) {
		return fmt.Errorf("%w: unknown node %d", game.ErrInvalidMove, n)
	}
	if occupant := c.board.Occupant(n); occupant != game.Human {
		return fmt.Errorf("%w: node %d holds %s, not a %s piece", game.ErrInvalidMove, n, occupant, game.Human)
	}
	c.selected = n
	return nil
}

// SubmitMoveTo moves the selected piece to n. A rejected destination keeps the
// selection so the human can retry.
func (c *Controller) SubmitMoveTo(n game.Node) error {
	if err := c.humanTurn(game.Moving); err != nil {
		return err
	}
	if c.selected == game.NoNode {
		return fmt.Errorf("%w: no piece selected", game.ErrInvalidMove)
	}
	return c.apply(game.MoveFrom(c.selected, n), game.Human, Update{})
}

// SubmitAction plays a complete action for the human seat.
func (c *Controller) SubmitAction(a game.Action) error {
	if err := c.humanTurn(c.rules.Phase(c.board, game.Human)); err != nil {
		return err
	}
	if !game.ContainsAction(c.rules.LegalActions(c.board, game.Human), a) {
		return fmt.Errorf("%w: %s is not legal for %s", game.ErrInvalidMove, a, game.Human)
	}
	return c.apply(a, game.Human, Update{})
}

// AdvanceComputerTurn lets the computer's agent play one action.
func (c *Controller) AdvanceComputerTurn() (Snapshot, error) {
	if err := c.open(); err != nil {
		return c.CurrentState(), err
	}
	if c.turn != game.Computer {
		return c.CurrentState(), fmt.Errorf("%w: it is %s's turn", game.ErrInvalidMove, c.turn)
	}

	action, metric, err := c.computer.FindMove(c.board.Copy(), game.Computer)
	if errors.Is(err, agent.ErrNoAction) {
		// The turn machine never hands the turn to a player without actions.
		return c.CurrentState(), fmt.Errorf("computer has no action: %w", err)
	}
	if err != nil {
		return c.CurrentState(), fmt.Errorf("computer failed to find a move: %w", err)
	}
	if !game.ContainsAction(c.rules.LegalActions(c.board, game.Computer), action) {
		return c.CurrentState(), fmt.Errorf("%w: computer proposed %s", game.ErrInvalidMove, action)
	}

	if err := c.apply(action, game.Computer, Update{Metric: metric}); err != nil {
		return c.CurrentState(), err
	}
	c.logger.Info().
		Stringer("action", action).
		Int("score", metric.Score).
		Msgf("computer plays %s", action)
	return c.CurrentState(), nil
}

func (c *Controller) open() error {
	if c.status != InProgress {
		return fmt.Errorf("%w: game is over", game.ErrInvalidMove)
	}
	return nil
}

func (c *Controller) humanTurn(phase game.Phase) error {
	if err := c.open(); err != nil {
		return err
	}
	if c.turn != game.Human {
		return fmt.Errorf("%w: it is %s's turn", game.ErrInvalidMove, c.turn)
	}
	if current := c.rules.Phase(c.board, game.Human); current != phase {
		return fmt.Errorf("%w: %s is in the %s phase", game.ErrInvalidMove, game.Human, current)
	}
	return nil
}

// apply plays a for p and advances the turn machine. A rejected action leaves
// the game untouched.
func (c *Controller) apply(a game.Action, p game.Player, u Update) error {
	if err := game.Apply(c.board, a, p); err != nil {
		return err
	}
	u.Player = p
	u.Action = a
	c.history = append(c.history, u)
	c.selected = game.NoNode
	c.logger.Debug().Stringer("player", p).Stringer("action", a).Msg("applied action")

	c.resolve(p)
	return nil
}

// resolve decides what follows p's action. Only p's lines are checked: an
// action cannot complete the opponent's line.
func (c *Controller) resolve(p game.Player) {
	if c.rules.IsWinner(c.board, p) {
		c.status = Won
		c.winner = p
		c.logger.Info().Stringer("winner", p).Int("turns", len(c.history)).Msg("game won")
		return
	}
	if c.rules.IsDraw(c.board) {
		c.status = Drawn
		c.logger.Info().Int("turns", len(c.history)).Msg("game drawn")
		return
	}

	next := p.Opponent()
	switch {
	case c.canAct(next):
		c.turn = next
	case c.canAct(p):
		c.logger.Info().Stringer("player", next).Msg("no valid moves, turn lost")
		c.turn = p
	default:
		c.status = Drawn
		c.logger.Info().Int("turns", len(c.history)).Msg("no player can move, game drawn")
	}
}

func (c *Controller) canAct(p game.Player) bool {
	return len(c.rules.LegalActions(c.board, p)) > 0
}
