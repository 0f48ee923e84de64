package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/gridiron/internal/config"
	"github.com/lox/gridiron/internal/report"
	"github.com/lox/gridiron/internal/simulator"
)

type BatchCmd struct {
	Games   *int           `short:"n" help:"Number of games (overrides config and GRIDIRON_GAMES)"`
	Seed    *int64         `help:"Seed of the first game; game i uses seed+i"`
	Workers *int           `short:"w" help:"Parallel workers (default: number of CPUs)"`
	Timeout *time.Duration `help:"Abort the batch after this long"`
	NameA   string         `name:"name-a" help:"Name of team A"`
	NameB   string         `name:"name-b" help:"Name of team B"`
	RosterA string         `name:"roster-a" type:"existingfile" help:"Roster CSV for team A"`
	RosterB string         `name:"roster-b" type:"existingfile" help:"Roster CSV for team B"`

	JSON       string `help:"Write the report as JSON to this file"`
	NoProgress bool   `help:"Hide the progress bar"`
}

func (c *BatchCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(matchFlags{
		Seed:    c.Seed,
		Games:   c.Games,
		Workers: c.Workers,
		Names:   [2]string{c.NameA, c.NameB},
		Rosters: [2]string{c.RosterA, c.RosterB},
	})
	if err != nil {
		return err
	}
	if c.Timeout != nil {
		cfg.Simulation.Timeout = c.Timeout.String()
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	logger, err := g.logger(cfg.Simulation.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	var progress io.Writer
	if !c.NoProgress {
		progress = os.Stderr
	}
	return c.run(ctx, cfg, logger, os.Stdout, progress, !g.NoColor)
}

// run plays the batch, drawing progress on progressOut when it is non-nil
// and printing the report to out.
func (c *BatchCmd) run(ctx context.Context, cfg *config.Config, logger *log.Logger, out, progressOut io.Writer, color bool) error {
	profs, err := profiles(cfg, logger)
	if err != nil {
		return err
	}

	simCfg := simulator.Config{
		Games:   cfg.Simulation.Games,
		Seed:    cfg.Simulation.Seed,
		Workers: cfg.Simulation.Workers,
		Timeout: cfg.Timeout(),
		Logger:  logger,
	}
	for side, pr := range profs {
		simCfg.Teams[side] = simulator.Team{Name: pr.Team, QBSkill: pr.QBSkill}
	}

	var bar *report.Progress
	if progressOut != nil {
		bar = report.NewProgress(progressOut, 40, color)
		simCfg.Progress = bar.Update
	}

	rep, runErr := simulator.New(simCfg).Run(ctx)
	if bar != nil {
		if err := bar.Finish(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := report.NewPrinter(out, color).Batch(rep); err != nil {
		return err
	}
	if c.JSON != "" {
		if err := report.WriteJSON(c.JSON, rep); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.JSON)
	}
	return nil
}
