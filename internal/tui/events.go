package tui

import (
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lobbypoker-server/sdk"
)

// PingInterval is how often the client probes connection quality
const PingInterval = 5 * time.Second

// Bubble Tea messages delivered from the server event stream

type identityMsg sdk.IdentityAssignedData

type lobbyListMsg sdk.LobbyListData

type lobbyCreatedMsg sdk.LobbyCreatedData

type lobbyJoinedMsg sdk.LobbyJoinedData

type lobbyUpdatedMsg sdk.LobbyUpdatedData

type playerJoinedMsg sdk.PlayerJoinedData

type playerLeftMsg sdk.PlayerLeftData

type gameStartedMsg sdk.GameStartedData

type gameStateMsg sdk.GameStateUpdatedData

type actionFeedMsg sdk.ActionBroadcastData

type serverErrorMsg struct {
	kind sdk.MessageType
	data sdk.ErrorData
}

type qualityMsg sdk.Quality

// Subscribe wires the SDK's event stream into the Bubble Tea program.
// Handlers run on the SDK's dispatch goroutines; program.Send is safe to
// call from them.
func Subscribe(client *sdk.WSClient, program *tea.Program) {
	forward := func(msgType sdk.MessageType, build func(json.RawMessage) tea.Msg) {
		client.AddEventHandler(msgType, func(msg *sdk.Message) {
			if m := build(msg.Data); m != nil {
				program.Send(m)
			}
		})
	}

	forward(sdk.MessageTypeIdentityAssigned, func(raw json.RawMessage) tea.Msg {
		var data sdk.IdentityAssignedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return identityMsg(data)
	})
	forward(sdk.MessageTypeLobbyList, func(raw json.RawMessage) tea.Msg {
		var data sdk.LobbyListData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return lobbyListMsg(data)
	})
	forward(sdk.MessageTypeLobbiesUpdated, func(raw json.RawMessage) tea.Msg {
		var data sdk.LobbyListData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return lobbyListMsg(data)
	})
	forward(sdk.MessageTypeLobbyCreated, func(raw json.RawMessage) tea.Msg {
		var data sdk.LobbyCreatedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return lobbyCreatedMsg(data)
	})
	forward(sdk.MessageTypeLobbyJoined, func(raw json.RawMessage) tea.Msg {
		var data sdk.LobbyJoinedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return lobbyJoinedMsg(data)
	})
	forward(sdk.MessageTypeLobbyUpdated, func(raw json.RawMessage) tea.Msg {
		var data sdk.LobbyUpdatedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return lobbyUpdatedMsg(data)
	})
	forward(sdk.MessageTypePlayerJoined, func(raw json.RawMessage) tea.Msg {
		var data sdk.PlayerJoinedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return playerJoinedMsg(data)
	})
	forward(sdk.MessageTypePlayerLeft, func(raw json.RawMessage) tea.Msg {
		var data sdk.PlayerLeftData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return playerLeftMsg(data)
	})
	forward(sdk.MessageTypeGameStarted, func(raw json.RawMessage) tea.Msg {
		var data sdk.GameStartedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return gameStartedMsg(data)
	})
	forward(sdk.MessageTypeGameStateUpdated, func(raw json.RawMessage) tea.Msg {
		var data sdk.GameStateUpdatedData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return gameStateMsg(data)
	})
	forward(sdk.MessageTypePlayerAction, func(raw json.RawMessage) tea.Msg {
		var data sdk.ActionBroadcastData
		if json.Unmarshal(raw, &data) != nil {
			return nil
		}
		return actionFeedMsg(data)
	})

	for _, errType := range []sdk.MessageType{
		sdk.MessageTypeError,
		sdk.MessageTypeJoinLobbyError,
		sdk.MessageTypeStartGameError,
		sdk.MessageTypePokerActionError,
	} {
		errType := errType
		forward(errType, func(raw json.RawMessage) tea.Msg {
			var data sdk.ErrorData
			if json.Unmarshal(raw, &data) != nil {
				return nil
			}
			return serverErrorMsg{kind: errType, data: data}
		})
	}
}

// SubscribeQuality forwards connection quality transitions to the program
func SubscribeQuality(monitor *sdk.ConnectionMonitor, program *tea.Program) {
	monitor.OnQualityChange(func(q sdk.Quality) {
		program.Send(qualityMsg(q))
	})
}
