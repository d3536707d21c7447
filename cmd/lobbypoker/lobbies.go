package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"lobbypoker-server/cmd/lobbypoker/shared"
	"lobbypoker-server/sdk"
)

// LobbiesCmd prints the joinable lobbies on a server and exits
type LobbiesCmd struct {
	Server  string        `kong:"default='ws://localhost:8080/ws',help='Server WebSocket URL'"`
	Timeout time.Duration `kong:"default='5s',help='How long to wait for the server'"`
	JSON    bool          `kong:"help='Emit the raw JSON payload'"`
}

func (c *LobbiesCmd) Run() error {
	logger := shared.SetupLogger(false)

	client := sdk.NewWSClient(c.Server, logger)
	if err := client.Connect(); err != nil {
		return fmt.Errorf("connecting to %s: %w", c.Server, err)
	}
	defer func() { _ = client.Disconnect() }()

	result := make(chan sdk.LobbyListData, 1)
	client.AddEventHandler(sdk.MessageTypeLobbyList, func(msg *sdk.Message) {
		var data sdk.LobbyListData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		select {
		case result <- data:
		default:
		}
	})

	if err := client.GetLobbies(); err != nil {
		return err
	}

	select {
	case data := <-result:
		return c.print(data)
	case <-time.After(c.Timeout):
		return fmt.Errorf("no response from server within %s", c.Timeout)
	}
}

func (c *LobbiesCmd) print(data sdk.LobbyListData) error {
	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(data.Lobbies)
	}

	if len(data.Lobbies) == 0 {
		fmt.Println("no joinable lobbies")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHOST\tPLAYERS\tBLINDS")
	for _, l := range data.Lobbies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%d/%d\n",
			l.ID, l.Name, l.HostName, l.Players, l.MaxPlayers, l.Blinds.Small, l.Blinds.Big)
	}
	return w.Flush()
}
