package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/gridiron/internal/config"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/roster"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config    string  `short:"c" default:"gridiron.hcl" help:"Match configuration file (HCL); a missing file uses defaults"`
	LogLevel  *string `help:"Log level (debug|info|warn|error)"`
	Verbose   bool    `help:"Shorthand for --log-level=debug"`
	LogFormat string  `default:"text" enum:"text,json" help:"Log format (text|json)"`
	NoColor   bool    `help:"Disable colour output"`
}

// matchFlags are the per-command overrides applied after the file and the
// environment.
type matchFlags struct {
	Seed    *int64
	Games   *int
	Workers *int
	Names   [2]string
	Rosters [2]string
}

// loadConfig reads the file, applies environment overrides, then flags, and
// validates the result.
func (g *Globals) loadConfig(flags matchFlags) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}

	overrides, err := config.ParseEnv(nil)
	if err != nil {
		return nil, err
	}
	cfg.Apply(overrides)
	cfg.Apply(config.Overrides{
		Seed:     flags.Seed,
		Games:    flags.Games,
		Workers:  flags.Workers,
		LogLevel: g.LogLevel,
	})
	if g.Verbose {
		cfg.Simulation.LogLevel = "debug"
	}

	for _, side := range []football.Side{football.TeamA, football.TeamB} {
		if flags.Names[side] == "" && flags.Rosters[side] == "" {
			continue
		}
		team := cfg.Team(side)
		if flags.Names[side] != "" {
			team.Name = flags.Names[side]
		}
		if flags.Rosters[side] != "" {
			team.Roster = flags.Rosters[side]
		}
		cfg.Teams = setTeam(cfg.Teams, team)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setTeam(teams []config.TeamConfig, team config.TeamConfig) []config.TeamConfig {
	for i := range teams {
		if teams[i].Side == team.Side {
			teams[i] = team
			return teams
		}
	}
	return append(teams, team)
}

func (g *Globals) logger(level string) (*log.Logger, error) {
	return newLogger(os.Stderr, level, g.LogFormat)
}

// flagLogger builds the logger from flags alone, for commands that do not
// read the match configuration.
func (g *Globals) flagLogger() (*log.Logger, error) {
	level := "info"
	if g.LogLevel != nil {
		level = *g.LogLevel
	}
	if g.Verbose {
		level = "debug"
	}
	return g.logger(level)
}

func newLogger(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	}
	if format == "json" {
		opts.Formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, opts), nil
}

// profiles resolves both teams' ratings. A configured qb_skill replaces the
// roster-derived one.
func profiles(cfg *config.Config, logger *log.Logger) ([2]roster.Profile, error) {
	var out [2]roster.Profile
	for _, side := range []football.Side{football.TeamA, football.TeamB} {
		team := cfg.Team(side)
		pr := roster.DefaultProfile(team.Name)
		if team.Roster != "" {
			r, err := roster.LoadFile(team.Name, team.Roster)
			if err != nil {
				return out, fmt.Errorf("team %s: %w", team.Side, err)
			}
			pr = r.Profile(logger)
		} else {
			logger.Debug("No roster configured, using default ratings", "team", team.Name)
		}
		if team.QBSkill != nil {
			pr.QBSkill = *team.QBSkill
			pr.DefaultQBSkill = false
		}
		out[side] = pr
	}
	return out, nil
}

// signalContext is cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
