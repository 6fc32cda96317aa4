// Package config loads the simulator configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/crowdsim/internal/core/avoidance"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/system"
	"github.com/zeusync/crowdsim/internal/scenario"
	"github.com/zeusync/crowdsim/internal/server"
)

// Config is the root of the configuration file. Sections left out of the file
// keep their defaults.
type Config struct {
	Log        log.Config       `yaml:"log"`
	Engine     avoidance.Params `yaml:"engine"`
	Simulation system.Config    `yaml:"simulation"`
	Scenario   scenario.Config  `yaml:"scenario"`
	Server     server.Config    `yaml:"server"`
}

func Default() Config {
	return Config{
		Log: log.Config{
			Level:    "info",
			Encoding: "console",
		},
		Engine:     avoidance.DefaultParams(),
		Simulation: system.DefaultConfig(),
		Scenario:   scenario.DefaultConfig(),
		Server:     server.DefaultConfig(),
	}
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode applies the YAML document in r over the defaults. Unknown keys are
// rejected; an empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Encode writes c as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks every section and names the first one that fails.
func (c *Config) Validate() error {
	sections := [...]struct {
		name     string
		validate func() error
	}{
		{"log", c.Log.Validate},
		{"engine", c.Engine.Validate},
		{"simulation", c.Simulation.Validate},
		{"scenario", c.Scenario.Validate},
		{"server", c.Server.Validate},
	}
	for _, s := range sections {
		if err := s.validate(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}
