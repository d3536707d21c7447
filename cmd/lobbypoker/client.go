package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"

	"lobbypoker-server/cmd/lobbypoker/shared"
	"lobbypoker-server/internal/tui"
	"lobbypoker-server/sdk"
)

// ClientCmd runs the interactive terminal client
type ClientCmd struct {
	Server string `kong:"default='ws://localhost:8080/ws',help='Server WebSocket URL'"`
	Name   string `kong:"required,help='Display name at the table'"`
	Avatar string `kong:"help='Avatar identifier'"`
	Debug  bool   `kong:"help='Enable debug logging to lobbypoker-client.log'"`
}

func (c *ClientCmd) Run() error {
	// The TUI owns the terminal, so logs go to a file
	logger, closer := shared.SetupFileLogger("lobbypoker-client.log", c.Debug)
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	client := sdk.NewWSClient(c.Server, logger)
	if err := client.Connect(); err != nil {
		return fmt.Errorf("connecting to %s: %w", c.Server, err)
	}
	defer func() { _ = client.Disconnect() }()

	monitor := sdk.NewConnectionMonitor(client, quartz.NewReal(), tui.PingInterval, logger)
	monitor.Start()
	defer monitor.Stop()

	model := tui.New(client, monitor, c.Name, c.Avatar)
	program := tea.NewProgram(model, tea.WithAltScreen())
	tui.Subscribe(client, program)
	tui.SubscribeQuality(monitor, program)

	if err := client.JoinIdentity(c.Name, c.Avatar); err != nil {
		return err
	}

	_, err := program.Run()
	return err
}
