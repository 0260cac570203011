package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"alinea/communication/client"
	"alinea/engine"
	"alinea/experiments"
	"alinea/game"
	"alinea/gamemaster"
	"alinea/meta"
	"alinea/player"
	"alinea/searcher"
	"alinea/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	mode := flag.String("mode", "", "play, selfplay, experiment or serve")
	rules := flag.String("rules", "", "rule variant: phased or interleaved")
	depth := flag.Int("depth", 0, "minimax search depth")
	goroutines := flag.Int("goroutines", 0, "goroutines scoring root actions")
	addr := flag.String("addr", "", "agent server listen address (serve)")
	remote := flag.String("remote", "", "agent server URL the computer asks for moves")
	experiment := flag.String("experiment", "", "depth, baseline or throughput")
	games := flag.Int("games", 0, "games per match-up (experiment)")
	out := flag.String("out", "", "experiment results directory")
	level := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	config := meta.Default()
	if *configPath != "" {
		var err error
		config, err = meta.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	// Flags given on the command line win over the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			config.Mode = *mode
		case "rules":
			config.Rules = *rules
		case "depth":
			config.Depth = *depth
		case "goroutines":
			config.Goroutines = *goroutines
		case "addr":
			config.Server.Addr = *addr
		case "remote":
			config.Server.Remote = *remote
		case "experiment":
			config.Experiment.Name = *experiment
		case "games":
			config.Experiment.Games = *games
		case "out":
			config.Experiment.BaseDir = *out
		case "log-level":
			config.LogLevel = *level
		}
	})
	if err := config.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	setupLogger(config.LogLevel)

	if err := run(config); err != nil {
		log.Fatal().Err(err).Msgf("%s failed", config.Mode)
	}
}

func setupLogger(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func run(config meta.Config) error {
	rules, err := game.NewRules(config.Rules)
	if err != nil {
		return err
	}

	switch config.Mode {
	case "play":
		c := gamemaster.StartGame(gamemaster.WithRules(rules), gamemaster.WithAgent(computer(config, rules)))
		return player.NewConsole(c, os.Stdin, os.Stdout).Play()

	case "selfplay":
		e := engine.LocalEngine(newMinimax(config, rules), computer(config, rules), rules)
		e.MaxTurns = config.MaxTurns
		winner, gameMetric, _, err := e.Run()
		if err != nil {
			return err
		}
		log.Info().
			Stringer("winner", winner).
			Bool("drawn", gameMetric.Drawn).
			Int("moves", gameMetric.TotalMoves).
			Dur("duration", gameMetric.Duration).
			Msg("self-play finished")
		fmt.Println(player.Render(e.Controller().CurrentState().Cells))
		return nil

	case "experiment":
		var dir string
		switch config.Experiment.Name {
		case "depth":
			dir, err = experiments.DepthExperiment(config.Rules, config.Experiment.Games, config.Experiment.BaseDir)
		case "baseline":
			dir, err = experiments.BaselineExperiment(config.Rules, config.Experiment.Games, config.Experiment.BaseDir)
		case "throughput":
			dir, err = experiments.ThroughputExperiment(config.Rules, config.Experiment.Games, config.Experiment.BaseDir)
		default:
			return fmt.Errorf("unknown experiment %q", config.Experiment.Name)
		}
		if err != nil {
			return err
		}
		fmt.Println(dir)
		return nil

	case "serve":
		server, err := agent.NewServer(config.Rules, config.Goroutines)
		if err != nil {
			return err
		}
		return server.ListenAndServe(config.Server.Addr)
	}
	return fmt.Errorf("unknown mode %q", config.Mode)
}

// computer is the agent for the computer seat: a remote agent server when one
// is configured, a local minimax search otherwise.
func computer(config meta.Config, rules game.Rules) agent.Agent {
	if config.Server.Remote != "" {
		return client.NewRemoteAgent(config.Server.Remote, rules.Name(), config.Depth)
	}
	return newMinimax(config, rules)
}

func newMinimax(config meta.Config, rules game.Rules) agent.Agent {
	return agent.NewMinimaxAgent(rules,
		searcher.WithDepth(config.Depth),
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithMetrics(),
	)
}
