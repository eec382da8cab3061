package solver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/thalesfsp/tpe"
)

//////
// Const, vars, types.
//////

// Config holds the solver-wide settings applied to every optimizer the
// harness creates.
//
// Fields explanation:
// - Gamma: fraction boundary between superior and inferior trial groups
// - Candidates: samples drawn per ask to pick the next parameter value
// - Seed: base seed for session random number generators
//
// Zero values fall back to the library defaults (gamma 0.1, 24 candidates),
// so an empty config file is valid.
type Config struct {
	Gamma      float64 `yaml:"gamma"`
	Candidates int     `yaml:"candidates"`
	Seed       uint64  `yaml:"seed"`
}

//////
// Exported functionalities.
//////

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	defaults := tpe.DefaultOptimizerConfig()

	return Config{
		Gamma:      defaults.Gamma,
		Candidates: defaults.Candidates,
	}
}

// LoadConfig reads a YAML configuration file and merges it over the
// defaults. A missing path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
	}

	if config.Gamma == 0 {
		config.Gamma = DefaultConfig().Gamma
	}

	if config.Candidates == 0 {
		config.Candidates = DefaultConfig().Candidates
	}

	return config, nil
}

//////
// Methods.
//////

// optimizerConfig converts the solver config into the core optimizer
// config. Validation happens in the core on session creation.
func (c Config) optimizerConfig() tpe.OptimizerConfig {
	return tpe.OptimizerConfig{
		Gamma:      c.Gamma,
		Candidates: c.Candidates,
	}
}
