package experiments

import "alinea/experiments/metrics"

// ThroughputExperiment plays each parallel configuration against itself, so
// both sides search the same trees and move records compare nodes per second
// across goroutine counts.
func ThroughputExperiment(rules string, games int, baseDir string) (string, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][2]metrics.AgentConfig{}
	for id, goroutines := range []int{1, 2, 4, 8} {
		config := metrics.AgentConfig{ID: id + 1, Kind: Minimax, Rules: rules, Depth: 4, Goroutines: goroutines}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}

	return Run("throughput", configs, matchUps, games, baseDir)
}
