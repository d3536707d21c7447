package server

import (
	"encoding/json"
	"time"

	"lobbypoker-server/internal/game"
	"lobbypoker-server/internal/lobby"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type JoinIdentityData struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	// PlayerID is set by reconnecting clients to resume their identity
	PlayerID string `json:"playerId,omitempty"`
}

type CreateLobbyData struct {
	Name       string      `json:"name"`
	MaxPlayers int         `json:"maxPlayers,omitempty"`
	Blinds     game.Blinds `json:"blinds,omitempty"`
}

type JoinLobbyData struct {
	LobbyID string `json:"lobbyId"`
}

type LeaveLobbyData struct {
	LobbyID string `json:"lobbyId"`
}

type StartGameData struct {
	LobbyID string `json:"lobbyId"`
}

type PlayerActionData struct {
	LobbyID string `json:"lobbyId"`
	Action  string `json:"action"`
	Amount  int    `json:"amount,omitempty"`
}

type CursorMoveData struct {
	LobbyID string  `json:"lobbyId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type CardInteractionData struct {
	LobbyID string `json:"lobbyId"`
	CardID  string `json:"cardId"`
	Kind    string `json:"kind"`
}

type GetLobbyDetailsData struct {
	LobbyID string `json:"lobbyId"`
}

type PingData struct {
	Timestamp int64 `json:"timestamp"`
}

// Server → Client Messages

type IdentityAssignedData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

type LobbyCreatedData struct {
	Lobby lobby.Info `json:"lobby"`
}

type LobbyJoinedData struct {
	Lobby    lobby.Info `json:"lobby"`
	PlayerID string     `json:"playerId"`
	Resumed  bool       `json:"resumed,omitempty"`
}

type PlayerJoinedData struct {
	LobbyID string       `json:"lobbyId"`
	Player  lobby.Member `json:"player"`
}

type PlayerLeftData struct {
	LobbyID  string `json:"lobbyId"`
	PlayerID string `json:"playerId"`
	HostID   string `json:"hostId"`
}

type LobbyUpdatedData struct {
	Lobby lobby.Info `json:"lobby"`
}

type LobbyListData struct {
	Lobbies []lobby.Summary `json:"lobbies"`
}

type LobbyDetailsData struct {
	Lobby lobby.Info `json:"lobby"`
}

// GameStateUpdatedData carries a per-viewer projection. The game-started
// message shares this payload shape, only the message type differs.
type GameStateUpdatedData struct {
	LobbyID string    `json:"lobbyId"`
	State   game.View `json:"state"`
}

type ActionBroadcastData struct {
	LobbyID string            `json:"lobbyId"`
	Action  game.ActionRecord `json:"action"`
}

type CursorUpdateData struct {
	LobbyID  string  `json:"lobbyId"`
	PlayerID string  `json:"playerId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type CardInteractionUpdateData struct {
	LobbyID  string `json:"lobbyId"`
	PlayerID string `json:"playerId"`
	CardID   string `json:"cardId"`
	Kind     string `json:"kind"`
}

type PongData struct {
	Timestamp  int64 `json:"timestamp"`
	ServerTime int64 `json:"serverTime"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
