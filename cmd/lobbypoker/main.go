package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Server  ServerCmd        `cmd:"" help:"Run the lobby poker server"`
	Client  ClientCmd        `cmd:"" help:"Connect as an interactive player"`
	Lobbies LobbiesCmd       `cmd:"" help:"List joinable lobbies on a server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("lobbypoker"),
		kong.Description("Real-time multiplayer poker lobby server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
