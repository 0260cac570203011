package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"alinea/experiments/metrics"
	"alinea/game"
	"alinea/searcher/agent"
)

// RemoteAgent asks an agent server for its moves.
type RemoteAgent struct {
	serverURL string
	rules     string
	depth     int
	client    *http.Client
}

// NewRemoteAgent returns an agent backed by the server at serverURL. An empty
// rules name or a zero depth leaves the choice to the server.
func NewRemoteAgent(serverURL, rules string, depth int) *RemoteAgent {
	return &RemoteAgent{
		serverURL: strings.TrimRight(serverURL, "/"),
		rules:     rules,
		depth:     depth,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (ra *RemoteAgent) FindMove(b *game.Board, p game.Player) (game.Action, metrics.SearchMetric, error) {
	data, err := json.Marshal(agent.FindMoveRequest{
		Rules:  ra.rules,
		Depth:  ra.depth,
		Player: p,
		Cells:  b.Cells(),
	})
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := ra.client.Post(ra.serverURL+"/findmove", "application/json", bytes.NewReader(data))
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnprocessableEntity:
		return game.Action{}, metrics.SearchMetric{}, agent.ErrNoAction
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("agent server returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var fm agent.FindMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&fm); err != nil {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("failed to decode response: %w", err)
	}
	// A malformed or stale answer must not reach the board.
	if !game.ContainsAction(legalFor(ra.rules, b, p), fm.Action) {
		return game.Action{}, metrics.SearchMetric{}, fmt.Errorf("agent server proposed illegal action %s", fm.Action)
	}

	duration, _ := time.ParseDuration(fm.Duration)
	return fm.Action, metrics.SearchMetric{
		Depth:    ra.depth,
		Duration: duration,
		Nodes:    fm.Nodes,
		Leaves:   fm.Leaves,
		Score:    fm.Score,
	}, nil
}

// legalFor lists the actions under the named rules, or under both variants
// when the server picks.
func legalFor(name string, b *game.Board, p game.Player) []game.Action {
	if rules, err := game.NewRules(name); err == nil {
		return rules.LegalActions(b, p)
	}
	var actions []game.Action
	for _, n := range game.RuleNames() {
		rules, _ := game.NewRules(n)
		actions = append(actions, rules.LegalActions(b, p)...)
	}
	return actions
}
