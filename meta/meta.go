package meta

import (
	"fmt"
	"os"

	"alinea/game"

	"gopkg.in/yaml.v3"
)

// PIECES defines how many pieces each player places.
const PIECES = game.DefaultPieces

// DEPTH defines the default minimax search depth.
const DEPTH = 3

// GO_ROUTINES defines the number of goroutines scoring root actions.
const GO_ROUTINES = 1

// MAX_TURNS caps self-play games.
const MAX_TURNS = 300

// Config collects the settings main reads from a file and flags.
type Config struct {
	Mode       string `yaml:"mode"`
	Rules      string `yaml:"rules"`
	Depth      int    `yaml:"depth"`
	Goroutines int    `yaml:"goroutines"`
	MaxTurns   int    `yaml:"max_turns"`
	LogLevel   string `yaml:"log_level"`

	Server     ServerConfig     `yaml:"server"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// Remote, when set, makes the computer ask this agent server for moves.
	Remote string `yaml:"remote"`
}

type ExperimentConfig struct {
	Name    string `yaml:"name"`
	Games   int    `yaml:"games"`
	BaseDir string `yaml:"base_dir"`
}

func Default() Config {
	return Config{
		Mode:       "play",
		Rules:      "phased",
		Depth:      DEPTH,
		Goroutines: GO_ROUTINES,
		MaxTurns:   MAX_TURNS,
		LogLevel:   "info",
		Server: ServerConfig{
			Addr: ":8080",
		},
		Experiment: ExperimentConfig{
			Name:    "depth",
			Games:   10,
			BaseDir: "results",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default value.
func Load(path string) (Config, error) {
	config := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	if _, err := game.NewRules(c.Rules); err != nil {
		return err
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", c.Depth)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	}
	if c.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be positive, got %d", c.MaxTurns)
	}
	switch c.Mode {
	case "play", "selfplay", "experiment", "serve":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	return nil
}
