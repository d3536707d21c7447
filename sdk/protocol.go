// Package sdk provides a Go client for the lobbypoker WebSocket protocol.
// It mirrors the server's wire types so external clients do not need to
// import server internals.
package sdk

import (
	"encoding/json"
	"time"
)

// MessageType represents a WebSocket message type
type MessageType string

const (
	// Client to server messages
	MessageTypeJoinIdentity    MessageType = "join-identity"
	MessageTypeCreateLobby     MessageType = "create-lobby"
	MessageTypeJoinLobby       MessageType = "join-lobby"
	MessageTypeLeaveLobby      MessageType = "leave-lobby"
	MessageTypeStartGame       MessageType = "start-game"
	MessageTypePlayerAction    MessageType = "player-action"
	MessageTypeCursorMove      MessageType = "cursor-move"
	MessageTypeCardInteraction MessageType = "card-interaction"
	MessageTypeGetLobbies      MessageType = "get-lobbies"
	MessageTypeGetLobbyDetails MessageType = "get-lobby-details"
	MessageTypePing            MessageType = "ping"

	// Server to client messages
	MessageTypeIdentityAssigned      MessageType = "identity-assigned"
	MessageTypeLobbyCreated          MessageType = "lobby-created"
	MessageTypeLobbyJoined           MessageType = "lobby-joined"
	MessageTypePlayerJoined          MessageType = "player-joined"
	MessageTypePlayerLeft            MessageType = "player-left"
	MessageTypeLobbyUpdated          MessageType = "lobby-updated"
	MessageTypeLobbiesUpdated        MessageType = "lobbies-updated"
	MessageTypeLobbyList             MessageType = "lobby-list"
	MessageTypeLobbyDetails          MessageType = "lobby-details"
	MessageTypeGameStarted           MessageType = "game-started"
	MessageTypeGameStateUpdated      MessageType = "game-state-updated"
	MessageTypeCursorUpdate          MessageType = "cursor-update"
	MessageTypeCardInteractionUpdate MessageType = "card-interaction-update"
	MessageTypePong                  MessageType = "pong"

	// Error messages
	MessageTypeError            MessageType = "error"
	MessageTypeJoinLobbyError   MessageType = "join-lobby-error"
	MessageTypeStartGameError   MessageType = "start-game-error"
	MessageTypePokerActionError MessageType = "poker-action-error"
)

// Message is the envelope every frame travels in
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
		Timestamp: time.Now().UTC(),
	}, nil
}

// Client → Server payloads

type JoinIdentityData struct {
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	PlayerID string `json:"playerId,omitempty"`
}

type Blinds struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

type CreateLobbyData struct {
	Name       string `json:"name"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	Blinds     Blinds `json:"blinds,omitempty"`
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

// Server → Client payloads

type IdentityAssignedData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
}

type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Chips  int    `json:"chips"`
}

type LobbyInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	HostID     string   `json:"hostId"`
	Players    []Member `json:"players"`
	MaxPlayers int      `json:"maxPlayers"`
	Blinds     Blinds   `json:"blinds"`
	Started    bool     `json:"gameStarted"`
}

type LobbySummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	HostName   string    `json:"hostName"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	Blinds     Blinds    `json:"blinds"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LobbyCreatedData struct {
	Lobby LobbyInfo `json:"lobby"`
}

type LobbyJoinedData struct {
	Lobby    LobbyInfo `json:"lobby"`
	PlayerID string    `json:"playerId"`
	Resumed  bool      `json:"resumed,omitempty"`
}

type PlayerJoinedData struct {
	LobbyID string `json:"lobbyId"`
	Player  Member `json:"player"`
}

type PlayerLeftData struct {
	LobbyID  string `json:"lobbyId"`
	PlayerID string `json:"playerId"`
	HostID   string `json:"hostId"`
}

type LobbyUpdatedData struct {
	Lobby LobbyInfo `json:"lobby"`
}

type LobbyListData struct {
	Lobbies []LobbySummary `json:"lobbies"`
}

type LobbyDetailsData struct {
	Lobby LobbyInfo `json:"lobby"`
}

type Card struct {
	ID    string `json:"id"`
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
}

type HandScore struct {
	Rank        string `json:"rank"`
	Value       int    `json:"value"`
	Description string `json:"description"`
}

type Suggestion struct {
	Action      string `json:"action"`
	Amount      int    `json:"amount,omitempty"`
	Explanation string `json:"explanation"`
	Reasoning   string `json:"reasoning"`
	Confidence  string `json:"confidence"`
	Highlight   bool   `json:"highlight,omitempty"`
	IsBluff     bool   `json:"isBluff,omitempty"`
}

type PlayerView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar,omitempty"`
	Position    int          `json:"position"`
	Cards       []Card       `json:"cards"`
	Bet         int          `json:"bet"`
	TotalBet    int          `json:"totalBet"`
	Chips       int          `json:"chips"`
	IsActive    bool         `json:"isActive"`
	IsFolded    bool         `json:"isFolded"`
	IsAllIn     bool         `json:"isAllIn"`
	HandRank    *HandScore   `json:"handRank"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

type ActionRecord struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Action     string `json:"action"`
	Amount     int    `json:"amount"`
	Forced     bool   `json:"forced,omitempty"`
}

type HandResult struct {
	WinnerID   string     `json:"winnerId"`
	WinnerName string     `json:"winnerName"`
	Amount     int        `json:"amount"`
	Showdown   bool       `json:"showdown"`
	HandRank   *HandScore `json:"handRank,omitempty"`
}

type GameView struct {
	GameType           string        `json:"gameType"`
	Phase              string        `json:"gameState"`
	Round              string        `json:"round"`
	Players            []PlayerView  `json:"players"`
	CommunityCards     []Card        `json:"communityCards"`
	Pot                int           `json:"pot"`
	CurrentPlayerIndex int           `json:"currentPlayerIndex"`
	CurrentBet         int           `json:"currentBet"`
	LastAction         *ActionRecord `json:"lastAction"`
	DealerIndex        int           `json:"dealerIndex"`
	Blinds             Blinds        `json:"blinds"`
	Result             *HandResult   `json:"result,omitempty"`
}

type GameStartedData struct {
	LobbyID string   `json:"lobbyId"`
	State   GameView `json:"state"`
}

type GameStateUpdatedData struct {
	LobbyID string   `json:"lobbyId"`
	State   GameView `json:"state"`
}

type ActionBroadcastData struct {
	LobbyID string       `json:"lobbyId"`
	Action  ActionRecord `json:"action"`
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
