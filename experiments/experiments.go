package experiments

import (
	"fmt"

	"alinea/engine"
	"alinea/experiments/metrics"
	"alinea/game"
	"alinea/searcher"
	"alinea/searcher/agent"

	"github.com/rs/zerolog/log"
)

const (
	NumGames = 10 // Per match up
	MaxTurns = 200
)

const (
	Minimax = "minimax"
	Random  = "random"
)

// DepthExperiment pairs deeper searchers against a depth-1 baseline.
func DepthExperiment(rules string, games int, baseDir string) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: Minimax, Rules: rules, Depth: 1, Goroutines: 1}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for id, depth := range []int{2, 3, 4} {
		config := metrics.AgentConfig{ID: id + 1, Kind: Minimax, Rules: rules, Depth: depth, Goroutines: 4}
		configs = append(configs, config)
		// Both seatings, since the human seat moves first
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config}, [2]metrics.AgentConfig{config, baseline})
	}

	return Run("depth", configs, matchUps, games, baseDir)
}

// BaselineExperiment pairs the default searcher against random play.
func BaselineExperiment(rules string, games int, baseDir string) (string, error) {
	random := metrics.AgentConfig{ID: 0, Kind: Random, Rules: rules, Seed: 1}
	minimax := metrics.AgentConfig{ID: 1, Kind: Minimax, Rules: rules, Depth: searcher.DefaultDepth, Goroutines: 1}
	matchUps := [][2]metrics.AgentConfig{
		{random, minimax},
		{minimax, random},
	}

	return Run("baseline", []metrics.AgentConfig{random, minimax}, matchUps, games, baseDir)
}

// Run plays games per match-up and writes the configs, game and move records
// under baseDir/name. It returns the directory written to.
func Run(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, games int, baseDir string) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			winner, gameMetric, moveMetrics, err := runGame(config1, config2, uint64(i))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Debug().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(baseDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	return writer.Dir(), nil
}

// runGame plays one game with config1 in the human seat. round offsets the
// random seeds so repeated games of a match-up differ.
func runGame(config1, config2 metrics.AgentConfig, round uint64) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	if config1.Rules != config2.Rules {
		return game.Empty, metrics.GameMetric{}, nil, fmt.Errorf("agents disagree on rules: %q vs %q", config1.Rules, config2.Rules)
	}
	rules, err := game.NewRules(config1.Rules)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	agent1, err := createAgent(config1, rules, round)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}
	agent2, err := createAgent(config2, rules, round)
	if err != nil {
		return game.Empty, metrics.GameMetric{}, nil, err
	}

	e := engine.LocalEngine(agent1, agent2, rules)
	e.MaxTurns = MaxTurns
	return e.Run()
}

func createAgent(config metrics.AgentConfig, rules game.Rules, offset uint64) (agent.Agent, error) {
	switch config.Kind {
	case Minimax:
		options := []searcher.Option{searcher.WithMetrics()}
		if config.Depth > 0 {
			options = append(options, searcher.WithDepth(config.Depth))
		}
		if config.Goroutines > 0 {
			options = append(options, searcher.WithGoroutines(config.Goroutines))
		}
		return agent.NewMinimaxAgent(rules, options...), nil
	case Random:
		return agent.NewRandomAgent(rules, config.Seed+offset), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}
}
