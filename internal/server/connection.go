package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"lobbypoker-server/internal/game"
	"lobbypoker-server/internal/lobby"
)

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn        *websocket.Conn
	send        chan *Message
	playerID    string
	playerName  string
	avatar      string
	lobbyID     string
	logger      *log.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	closeOnce   sync.Once
	gameService *GameService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, gameService *GameService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:        conn,
		send:        make(chan *Message, 256),
		logger:      logger.WithPrefix("conn"),
		ctx:         ctx,
		cancel:      cancel,
		gameService: gameService,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Send channel already closed during shutdown
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection", "player", c.GetPlayer())
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetIdentity associates this connection with an assigned identity
func (c *Connection) SetIdentity(playerID, name, avatar string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
	c.playerName = name
	c.avatar = avatar
}

// GetPlayer returns the associated player ID
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// GetPlayerName returns the associated display name
func (c *Connection) GetPlayerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerName
}

// SetLobby associates this connection with a lobby
func (c *Connection) SetLobby(lobbyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lobbyID = lobbyID
}

// GetLobby returns the associated lobby ID
func (c *Connection) GetLobby() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lobbyID
}

func (c *Connection) member() lobby.Member {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lobby.Member{ID: c.playerID, Name: c.playerName, Avatar: c.avatar}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches an incoming message by type
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case MessageTypeJoinIdentity:
		var data JoinIdentityData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypeError, "invalid_message", "Failed to parse join identity data")
			return
		}
		c.handleJoinIdentity(data)

	case MessageTypeCreateLobby:
		var data CreateLobbyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypeError, "invalid_message", "Failed to parse create lobby data")
			return
		}
		c.handleCreateLobby(data)

	case MessageTypeJoinLobby:
		var data JoinLobbyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypeJoinLobbyError, "invalid_message", "Failed to parse join lobby data")
			return
		}
		c.handleJoinLobby(data)

	case MessageTypeLeaveLobby:
		var data LeaveLobbyData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypeError, "invalid_message", "Failed to parse leave lobby data")
			return
		}
		c.handleLeaveLobby(data)

	case MessageTypeStartGame:
		var data StartGameData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypeStartGameError, "invalid_message", "Failed to parse start game data")
			return
		}
		c.handleStartGame(data)

	case MessageTypePlayerAction:
		var data PlayerActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypePokerActionError, "invalid_message", "Failed to parse player action data")
			return
		}
		c.handlePlayerAction(data)

	case MessageTypeCursorMove:
		var data CursorMoveData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.handleCursorMove(data)

	case MessageTypeCardInteraction:
		var data CardInteractionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.handleCardInteraction(data)

	case MessageTypeGetLobbies:
		c.handleGetLobbies()

	case MessageTypeGetLobbyDetails:
		var data GetLobbyDetailsData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(MessageTypeError, "invalid_message", "Failed to parse lobby details request")
			return
		}
		c.handleGetLobbyDetails(data)

	case MessageTypePing:
		var data PingData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.handlePing(data)

	default:
		c.sendError(MessageTypeError, "unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// sendError sends a typed error message to the client
func (c *Connection) sendError(msgType MessageType, code, message string) {
	errorMsg, err := NewMessage(msgType, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// requireIdentity checks the connection has announced an identity
func (c *Connection) requireIdentity(errType MessageType) bool {
	if c.GetPlayer() == "" {
		c.sendError(errType, "no_identity", "Must send join-identity first")
		return false
	}
	return true
}

func (c *Connection) handleJoinIdentity(data JoinIdentityData) {
	if data.Name == "" {
		c.sendError(MessageTypeError, "invalid_identity", "Player name required")
		return
	}

	assigned := c.gameService.AssignIdentity(data)
	c.SetIdentity(assigned.PlayerID, assigned.Name, assigned.Avatar)

	response, _ := NewMessage(MessageTypeIdentityAssigned, assigned)
	_ = c.SendMessage(response)
}

func (c *Connection) handleCreateLobby(data CreateLobbyData) {
	if !c.requireIdentity(MessageTypeError) {
		return
	}

	info := c.gameService.CreateLobby(c.member(), data)
	c.SetLobby(info.ID)

	response, _ := NewMessage(MessageTypeLobbyCreated, LobbyCreatedData{Lobby: info})
	_ = c.SendMessage(response)
}

func (c *Connection) handleJoinLobby(data JoinLobbyData) {
	if !c.requireIdentity(MessageTypeJoinLobbyError) {
		return
	}

	info, resumed, err := c.gameService.JoinLobby(c.member(), data.LobbyID)
	if err != nil {
		c.sendError(MessageTypeJoinLobbyError, "join_failed", err.Error())
		return
	}
	c.SetLobby(info.ID)

	response, _ := NewMessage(MessageTypeLobbyJoined, LobbyJoinedData{
		Lobby:    info,
		PlayerID: c.GetPlayer(),
		Resumed:  resumed,
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleLeaveLobby(data LeaveLobbyData) {
	if !c.requireIdentity(MessageTypeError) {
		return
	}

	lobbyID := data.LobbyID
	if lobbyID == "" {
		lobbyID = c.GetLobby()
	}
	if err := c.gameService.LeaveLobby(lobbyID, c.GetPlayer()); err != nil {
		c.sendError(MessageTypeError, "leave_failed", err.Error())
		return
	}
	c.SetLobby("")
}

func (c *Connection) handleStartGame(data StartGameData) {
	if !c.requireIdentity(MessageTypeStartGameError) {
		return
	}

	if err := c.gameService.StartGame(data.LobbyID, c.GetPlayer()); err != nil {
		c.sendError(MessageTypeStartGameError, "start_failed", err.Error())
		return
	}
}

func (c *Connection) handlePlayerAction(data PlayerActionData) {
	if !c.requireIdentity(MessageTypePokerActionError) {
		return
	}
	if data.LobbyID == "" {
		data.LobbyID = c.GetLobby()
	}

	if err := c.gameService.HandleAction(c.GetPlayer(), data); err != nil {
		if game.IsValidationError(err) || err == lobby.ErrNotStarted || err == lobby.ErrLobbyNotFound {
			c.sendError(MessageTypePokerActionError, "action_rejected", err.Error())
		} else {
			c.sendError(MessageTypeError, "action_failed", err.Error())
		}
		return
	}
}

func (c *Connection) handleCursorMove(data CursorMoveData) {
	if c.GetPlayer() == "" {
		return
	}
	if data.LobbyID == "" {
		data.LobbyID = c.GetLobby()
	}
	c.gameService.RelayCursor(c.GetPlayer(), data)
}

func (c *Connection) handleCardInteraction(data CardInteractionData) {
	if c.GetPlayer() == "" {
		return
	}
	if data.LobbyID == "" {
		data.LobbyID = c.GetLobby()
	}
	c.gameService.RelayCardInteraction(c.GetPlayer(), data)
}

func (c *Connection) handleGetLobbies() {
	response, _ := NewMessage(MessageTypeLobbyList, LobbyListData{
		Lobbies: c.gameService.ListLobbies(),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleGetLobbyDetails(data GetLobbyDetailsData) {
	info, err := c.gameService.LobbyDetails(data.LobbyID)
	if err != nil {
		c.sendError(MessageTypeError, "lobby_not_found", err.Error())
		return
	}

	response, _ := NewMessage(MessageTypeLobbyDetails, LobbyDetailsData{Lobby: info})
	_ = c.SendMessage(response)
}

// handlePing answers the application-level latency probe. This is distinct
// from the protocol ping frames the write pump sends.
func (c *Connection) handlePing(data PingData) {
	response, _ := NewMessage(MessageTypePong, PongData{
		Timestamp:  data.Timestamp,
		ServerTime: time.Now().UnixMilli(),
	})
	_ = c.SendMessage(response)
}
