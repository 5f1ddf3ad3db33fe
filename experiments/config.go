package experiments

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a batch: which seeds to judge, where the solutions are and
// where to store the results.
type Config struct {
	Version int    `yaml:"version"`
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
	Seeds   struct {
		From uint64 `yaml:"from"`
		To   uint64 `yaml:"to"`
	} `yaml:"seeds"`
	// InputDir holds <seed>.txt instances; empty means generate them from the seed.
	InputDir   string `yaml:"input_dir"`
	OutputDir  string `yaml:"output_dir"`
	ResultsDir string `yaml:"results_dir"`
	Workers    int    `yaml:"workers"`
}

// DefaultConfig judges seeds 0..99 from out/ with generated instances.
func DefaultConfig() *Config {
	cfg := &Config{
		Version:    1,
		Name:       "batch",
		OutputDir:  "out",
		ResultsDir: "results",
		Workers:    4,
	}
	cfg.Seeds.To = 99
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}

	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported batch config version: %d", cfg.Version)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Seeds.To < c.Seeds.From {
		return fmt.Errorf("seed range %d..%d is empty", c.Seeds.From, c.Seeds.To)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// SeedFile is the file name used for a seed in the input and output directories.
func SeedFile(seed uint64) string {
	return fmt.Sprintf("%04d.txt", seed)
}
