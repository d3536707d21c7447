package main

import (
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"lobbypoker-server/cmd/lobbypoker/shared"
	"lobbypoker-server/internal/server"
)

// ServerCmd runs the WebSocket lobby server
type ServerCmd struct {
	Config string `kong:"default='lobbypoker.hcl',help='Path to HCL configuration file'"`
	Addr   string `kong:"help='Listen address, overrides the config file'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := shared.SetupLogger(cfg.Server.LogLevel == "debug")

	addr := cfg.GetServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	srv := server.NewServer(addr, logger)
	svc, err := server.NewGameService(srv, logger, cfg, quartz.NewReal())
	if err != nil {
		return err
	}
	srv.SetGameService(svc)

	ctx := shared.SetupSignalHandler(logger)

	logger.Info("lobby server running",
		"addr", addr,
		"starting_chips", cfg.Game.StartingChips,
		"blinds", cfg.Game.SmallBlind,
		"turn_timeout", cfg.TurnTimeout(),
		"scoring", cfg.Game.Scoring,
		"long_poll", cfg.Server.AllowLongPoll)

	var group errgroup.Group
	group.Go(srv.Start)
	group.Go(func() error {
		<-ctx.Done()
		return srv.Stop()
	})
	return group.Wait()
}
