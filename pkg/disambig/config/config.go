package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/disambig/internal/internalerr"
)

// Config describes an evaluation session: which confusable sets to resolve,
// which model variants to compare and where the corpus comes from.
type Config struct {
	Sets      []SetConfig `yaml:"sets"`
	Orders    []string    `yaml:"orders"`
	Smoothing []string    `yaml:"smoothing"`
	Split     Split       `yaml:"split"`
	Workers   int         `yaml:"workers"`
	Corpus    []string    `yaml:"corpus"`
	DB        string      `yaml:"db"`
}

// SetConfig is one named confusable set.
type SetConfig struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// Split controls the train/test partition of the corpus.
type Split struct {
	Ratio float64 `yaml:"ratio"`
	Seed  int64   `yaml:"seed"`
}

// Default returns the configuration used when no file is given:
// their/there/they're, bigram and trigram, with and without add-one smoothing.
func Default() *Config {
	return &Config{
		Sets: []SetConfig{
			{Name: "their-there", Words: []string{"their", "there", "they're"}},
		},
		Orders:    []string{"bigram", "trigram"},
		Smoothing: []string{"none", "add-one"},
		Split:     Split{Ratio: 0.8, Seed: 1},
		Workers:   1,
	}
}

// Load reads a YAML configuration. Fields left out keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration without building anything.
func (c *Config) Validate() error {
	if len(c.Sets) == 0 {
		return fmt.Errorf("no confusable sets configured: %w", internalerr.ErrInvalidConfig)
	}
	if _, err := c.ConfusableSets(); err != nil {
		return err
	}
	if _, err := c.Variants(); err != nil {
		return err
	}
	if c.Split.Ratio <= 0 || c.Split.Ratio >= 1 {
		return fmt.Errorf("split.ratio %v not in (0, 1): %w", c.Split.Ratio, internalerr.ErrInvalidConfig)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d is negative: %w", c.Workers, internalerr.ErrInvalidConfig)
	}
	return nil
}
