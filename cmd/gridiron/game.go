package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/gridiron/internal/config"
	"github.com/lox/gridiron/internal/football"
	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/randutil"
	"github.com/lox/gridiron/internal/report"
)

type GameCmd struct {
	Seed    *int64 `help:"Seed for the game (overrides config and GRIDIRON_SEED)"`
	NameA   string `name:"name-a" help:"Name of team A"`
	NameB   string `name:"name-b" help:"Name of team B"`
	RosterA string `name:"roster-a" type:"existingfile" help:"Roster CSV for team A"`
	RosterB string `name:"roster-b" type:"existingfile" help:"Roster CSV for team B"`
	GameID  string `name:"game-id" help:"Game id, 26 characters of base32 (default: generated)"`

	Output  string `default:"text" enum:"text,log,none" help:"Play-by-play output: text (stdout), log (structured records on stderr), none"`
	Drives  bool   `help:"Summarise each drive in the text play-by-play"`
	History string `help:"Write the complete game history to this TOML file"`
}

func (c *GameCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig(matchFlags{
		Seed:    c.Seed,
		Names:   [2]string{c.NameA, c.NameB},
		Rosters: [2]string{c.RosterA, c.RosterB},
	})
	if err != nil {
		return err
	}
	logger, err := g.logger(cfg.Simulation.LogLevel)
	if err != nil {
		return err
	}

	result, err := c.play(cfg, logger, os.Stdout, !g.NoColor)
	if err != nil {
		return err
	}
	logger.Info("Game complete", "game", result.GameID, "score", fmt.Sprintf("%d-%d", result.Score[0], result.Score[1]))
	return nil
}

// play runs the configured game, writing play-by-play and the final report
// to out.
func (c *GameCmd) play(cfg *config.Config, logger *log.Logger, out io.Writer, color bool) (football.Result, error) {
	if c.GameID != "" {
		if err := gameid.Validate(c.GameID); err != nil {
			return football.Result{}, fmt.Errorf("--game-id: %w", err)
		}
	}
	profs, err := profiles(cfg, logger)
	if err != nil {
		return football.Result{}, err
	}
	teams := [2]string{profs[football.TeamA].Team, profs[football.TeamB].Team}

	id := c.GameID
	if id == "" {
		id = gameid.Generate()
	}
	seed := cfg.Simulation.Seed

	opts := []football.GameOption{
		football.WithLogger(logger),
		football.WithGameID(id),
		football.WithTeamNames(teams[0], teams[1]),
		football.WithQBSkill(football.TeamA, profs[football.TeamA].QBSkill),
		football.WithQBSkill(football.TeamB, profs[football.TeamB].QBSkill),
	}

	var text *football.WriterSubscriber
	switch c.Output {
	case "text":
		text = football.NewWriterSubscriber(out, football.FormattingOptions{Teams: teams, ShowDrives: c.Drives})
		opts = append(opts, football.WithSubscriber(text))
	case "log":
		opts = append(opts, football.WithSubscriber(football.NewLogSubscriber(logger, teams)))
	}

	var recorder *history.Recorder
	if c.History != "" {
		recorder = history.NewRecorder(id, seed)
		recorder.SetMetadata("qb_skill", []float64{profs[0].QBSkill, profs[1].QBSkill})
		recorder.SetMetadata("version", version)
		opts = append(opts, football.WithSubscriber(recorder))
	}

	logger.Debug("Starting game", "game", id, "seed", seed, "teams", teams)
	result := football.Simulate(randutil.New(seed), opts...)

	if text != nil {
		if err := text.Err(); err != nil {
			return result, fmt.Errorf("play-by-play: %w", err)
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return result, err
		}
	}

	if recorder != nil {
		if err := history.WriteFile(c.History, recorder.History()); err != nil {
			return result, err
		}
		logger.Info("Wrote game history", "path", c.History)
	}

	// A generated id is not reproducible from the seed, so the report omits it.
	shown := result
	if c.GameID == "" {
		shown.GameID = ""
	}
	if err := report.NewPrinter(out, color).Game(shown, profs); err != nil {
		return result, err
	}
	return result, nil
}
