// Package config loads match configuration from an HCL file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/gridiron/internal/football"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents a complete match configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Teams      []TeamConfig        `hcl:"team,block"`
}

// SimulationSettings controls seeding and batch execution.
type SimulationSettings struct {
	Seed     int64  `hcl:"seed,optional"`
	Games    int    `hcl:"games,optional"`
	Workers  int    `hcl:"workers,optional"`
	Timeout  string `hcl:"timeout,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TeamConfig describes one side of the matchup. The label is "A" or "B".
type TeamConfig struct {
	Side    string   `hcl:"side,label"`
	Name    string   `hcl:"name,optional"`
	Roster  string   `hcl:"roster,optional"`
	QBSkill *float64 `hcl:"qb_skill,optional"`
}

// Overrides are the settings that can come from the environment.
type Overrides struct {
	Seed     *int64  `env:"GRIDIRON_SEED"`
	Games    *int    `env:"GRIDIRON_GAMES"`
	Workers  *int    `env:"GRIDIRON_WORKERS"`
	LogLevel *string `env:"GRIDIRON_LOG_LEVEL"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Simulation: &SimulationSettings{
			Seed:     1,
			Games:    1,
			Workers:  runtime.NumCPU(),
			Timeout:  "5m",
			LogLevel: "info",
		},
		Teams: []TeamConfig{
			{Side: "A", Name: "Team A"},
			{Side: "B", Name: "Team B"},
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.Simulation == nil {
		c.Simulation = def.Simulation
	}
	s := c.Simulation
	if s.Games == 0 {
		s.Games = def.Simulation.Games
	}
	if s.Workers == 0 {
		s.Workers = def.Simulation.Workers
	}
	if s.Timeout == "" {
		s.Timeout = def.Simulation.Timeout
	}
	if s.LogLevel == "" {
		s.LogLevel = def.Simulation.LogLevel
	}

	for i := range c.Teams {
		c.Teams[i].Side = strings.ToUpper(c.Teams[i].Side)
		if c.Teams[i].Name == "" {
			c.Teams[i].Name = "Team " + c.Teams[i].Side
		}
	}
}

// ParseEnv reads overrides from environ, or from the process environment
// when environ is nil.
func ParseEnv(environ map[string]string) (Overrides, error) {
	var o Overrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return Overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// Apply copies every set override into the configuration.
func (c *Config) Apply(o Overrides) {
	if c.Simulation == nil {
		c.Simulation = Default().Simulation
	}
	if o.Seed != nil {
		c.Simulation.Seed = *o.Seed
	}
	if o.Games != nil {
		c.Simulation.Games = *o.Games
	}
	if o.Workers != nil {
		c.Simulation.Workers = *o.Workers
	}
	if o.LogLevel != nil {
		c.Simulation.LogLevel = *o.LogLevel
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Simulation == nil {
		return fmt.Errorf("%w: missing simulation block", ErrInvalidConfig)
	}
	s := c.Simulation
	if s.Games < 1 {
		return fmt.Errorf("%w: games must be at least 1, got %d", ErrInvalidConfig, s.Games)
	}
	if s.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, s.Workers)
	}
	if d, err := time.ParseDuration(s.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("%w: timeout %q must be a positive duration", ErrInvalidConfig, s.Timeout)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s.LogLevel)
	}

	seen := map[string]bool{}
	for _, team := range c.Teams {
		if team.Side != "A" && team.Side != "B" {
			return fmt.Errorf("%w: team label must be \"A\" or \"B\", got %q", ErrInvalidConfig, team.Side)
		}
		if seen[team.Side] {
			return fmt.Errorf("%w: team %s configured twice", ErrInvalidConfig, team.Side)
		}
		seen[team.Side] = true
		if team.QBSkill != nil && (*team.QBSkill < 0 || *team.QBSkill > 1) {
			return fmt.Errorf("%w: team %s: qb_skill must be between 0 and 1", ErrInvalidConfig, team.Side)
		}
	}
	return nil
}

// Timeout returns the batch deadline. Call after Validate.
func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.Simulation.Timeout)
	return d
}

// Team returns the configuration for one side. An unconfigured side gets the
// default name and no roster.
func (c *Config) Team(side football.Side) TeamConfig {
	label := side.String()
	for _, team := range c.Teams {
		if team.Side == label {
			return team
		}
	}
	return TeamConfig{Side: label, Name: "Team " + label}
}
