package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/gridiron/internal/report"
	"github.com/lox/gridiron/internal/roster"
)

type RosterCmd struct {
	File string `arg:"" type:"existingfile" help:"Roster CSV"`
	Team string `help:"Team name (default: file name)"`
	JSON bool   `help:"Print the profile as JSON"`
}

func (c *RosterCmd) Run(g *Globals) error {
	logger, err := g.flagLogger()
	if err != nil {
		return err
	}
	return c.show(logger, os.Stdout, !g.NoColor)
}

func (c *RosterCmd) show(logger *log.Logger, out io.Writer, color bool) error {
	team := c.Team
	if team == "" {
		team = strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File))
	}

	r, err := roster.LoadFile(team, c.File)
	if err != nil {
		return err
	}
	logger.Debug("Loaded roster", "team", team, "players", len(r.Players))

	profile := r.Profile(logger)
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	}
	return report.NewPrinter(out, color).Profile(profile)
}
