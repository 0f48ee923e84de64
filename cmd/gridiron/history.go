package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/gridiron/internal/gameid"
	"github.com/lox/gridiron/internal/history"
	"github.com/lox/gridiron/internal/report"
)

// HistoryCmd reads back a game history written by `game --history`.
type HistoryCmd struct {
	File  string `arg:"" name:"file" type:"existingfile" help:"Game history (TOML)"`
	Plays bool   `help:"List every snap before the summary"`
}

func (c *HistoryCmd) Run(g *Globals) error {
	logger, err := g.flagLogger()
	if err != nil {
		return err
	}
	return c.show(logger, os.Stdout, !g.NoColor)
}

func (c *HistoryCmd) show(logger *log.Logger, out io.Writer, color bool) error {
	h, err := history.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read history %s: %w", c.File, err)
	}
	result, err := h.Result()
	if err != nil {
		return err
	}
	logger.Debug("Loaded history", "game", h.Game, "seed", h.Seed, "plays", len(h.Plays))

	if c.Plays {
		for _, p := range h.Plays {
			_, err := fmt.Fprintf(out, "Q%d %s | %s | %d & %d, %d to go | %s: %s, %+d (%ds)\n",
				p.Quarter, p.Clock, p.Offense, p.Down, p.ToGo, p.YardsToTouchdown, p.Action, p.Result, p.Yards, p.Elapsed)
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(out, "seed %d\n", h.Seed); err != nil {
		return err
	}
	if at, err := gameid.Time(h.Game); err == nil {
		if _, err := fmt.Fprintf(out, "played %s\n", at.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	} else if h.Game != "" {
		logger.Debug("Game id carries no timestamp", "game", h.Game, "error", err)
	}
	return report.NewPrinter(out, color).Summary(result)
}
