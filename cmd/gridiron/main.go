package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Game    GameCmd          `cmd:"" help:"Play one game with play-by-play output"`
	Batch   BatchCmd         `cmd:"" help:"Replay one matchup many times and report the distribution"`
	Roster  RosterCmd        `cmd:"" help:"Show the ratings derived from a roster CSV"`
	History HistoryCmd       `cmd:"" help:"Summarise a saved game history"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gridiron"),
		kong.Description("Seeded American football game simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
