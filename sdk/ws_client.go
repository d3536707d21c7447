package sdk

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// EventHandler is a function that handles incoming messages
type EventHandler func(*Message)

// WSClient provides a WebSocket client for connecting to the lobby server
type WSClient struct {
	serverURL     string
	conn          *websocket.Conn
	logger        *log.Logger
	mu            sync.RWMutex
	eventHandlers map[MessageType][]EventHandler
	connected     bool
	stopChan      chan struct{}

	// Session state tracked for reconnection
	playerID string
	name     string
	avatar   string
	lobbyID  string
}

// NewWSClient creates a new WebSocket client
func NewWSClient(serverURL string, logger *log.Logger) *WSClient {
	return &WSClient{
		serverURL:     serverURL,
		logger:        logger,
		eventHandlers: make(map[MessageType][]EventHandler),
		stopChan:      make(chan struct{}),
	}
}

// Connect establishes a WebSocket connection to the server
func (c *WSClient) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
		// Already correct
	default:
		u.Scheme = "ws"
	}

	c.logger.Info("connecting to server", "url", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.stopChan = make(chan struct{})
	c.mu.Unlock()

	go c.readMessages()

	return nil
}

// Disconnect closes the WebSocket connection
func (c *WSClient) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.connected {
		return nil
	}

	c.connected = false
	close(c.stopChan)

	if c.conn != nil {
		_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		return c.conn.Close()
	}

	return nil
}

// SendMessage sends a message to the server
func (c *WSClient) SendMessage(msg *Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected || c.conn == nil {
		return ErrNotConnected
	}

	return c.conn.WriteJSON(msg)
}

// AddEventHandler registers a handler for a specific message type
func (c *WSClient) AddEventHandler(msgType MessageType, handler EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.eventHandlers[msgType] = append(c.eventHandlers[msgType], handler)
}

// RemoveEventHandlers removes all handlers for a specific message type
func (c *WSClient) RemoveEventHandlers(msgType MessageType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.eventHandlers, msgType)
}

// readMessages continuously reads messages from the WebSocket connection
func (c *WSClient) readMessages() {
	c.mu.RLock()
	conn := c.conn
	stop := c.stopChan
	c.mu.RUnlock()

	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		select {
		case <-stop:
			return
		default:
			var msg Message
			err := conn.ReadJSON(&msg)
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Error("websocket error", "error", err)
				}
				return
			}

			c.trackSession(&msg)
			c.dispatchMessage(&msg)
		}
	}
}

// trackSession records the identity and lobby the server has acknowledged,
// so a reconnect can resume them.
func (c *WSClient) trackSession(msg *Message) {
	switch msg.Type {
	case MessageTypeIdentityAssigned:
		var data IdentityAssignedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.mu.Lock()
		c.playerID = data.PlayerID
		c.name = data.Name
		c.avatar = data.Avatar
		c.mu.Unlock()

	case MessageTypeLobbyCreated:
		var data LobbyCreatedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.mu.Lock()
		c.lobbyID = data.Lobby.ID
		c.mu.Unlock()

	case MessageTypeLobbyJoined:
		var data LobbyJoinedData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return
		}
		c.mu.Lock()
		c.lobbyID = data.Lobby.ID
		c.mu.Unlock()
	}
}

// dispatchMessage sends a message to all registered handlers
func (c *WSClient) dispatchMessage(msg *Message) {
	c.mu.RLock()
	handlers := c.eventHandlers[msg.Type]
	c.mu.RUnlock()

	for _, handler := range handlers {
		// Run handlers in goroutines to prevent blocking the read loop
		go handler(msg)
	}
}

// IsConnected returns whether the client is connected
func (c *WSClient) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// PlayerID returns the identity the server assigned, if any
func (c *WSClient) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// LobbyID returns the lobby this client last joined, if any
func (c *WSClient) LobbyID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lobbyID
}

// JoinIdentity announces the player to the server. The returned identity
// arrives as an identity-assigned event.
func (c *WSClient) JoinIdentity(name, avatar string) error {
	c.mu.Lock()
	c.name = name
	c.avatar = avatar
	playerID := c.playerID
	c.mu.Unlock()

	msg, err := NewMessage(MessageTypeJoinIdentity, JoinIdentityData{
		Name:     name,
		Avatar:   avatar,
		PlayerID: playerID,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// CreateLobby asks the server to open a new lobby hosted by this client
func (c *WSClient) CreateLobby(name string, maxPlayers int, blinds Blinds) error {
	msg, err := NewMessage(MessageTypeCreateLobby, CreateLobbyData{
		Name:       name,
		MaxPlayers: maxPlayers,
		Blinds:     blinds,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// JoinLobby requests a seat in an existing lobby
func (c *WSClient) JoinLobby(lobbyID string) error {
	msg, err := NewMessage(MessageTypeJoinLobby, JoinLobbyData{LobbyID: lobbyID})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// LeaveLobby gives up the seat in a lobby
func (c *WSClient) LeaveLobby(lobbyID string) error {
	c.mu.Lock()
	if c.lobbyID == lobbyID {
		c.lobbyID = ""
	}
	c.mu.Unlock()

	msg, err := NewMessage(MessageTypeLeaveLobby, LeaveLobbyData{LobbyID: lobbyID})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// StartGame asks the server to deal; only the host's request succeeds
func (c *WSClient) StartGame(lobbyID string) error {
	msg, err := NewMessage(MessageTypeStartGame, StartGameData{LobbyID: lobbyID})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// SendAction submits a betting action for the running hand
func (c *WSClient) SendAction(lobbyID, action string, amount int) error {
	msg, err := NewMessage(MessageTypePlayerAction, PlayerActionData{
		LobbyID: lobbyID,
		Action:  action,
		Amount:  amount,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// SendCursor shares the local cursor position with the room
func (c *WSClient) SendCursor(lobbyID string, x, y float64) error {
	msg, err := NewMessage(MessageTypeCursorMove, CursorMoveData{LobbyID: lobbyID, X: x, Y: y})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// SendCardInteraction shares a card hover or tap with the room
func (c *WSClient) SendCardInteraction(lobbyID, cardID, kind string) error {
	msg, err := NewMessage(MessageTypeCardInteraction, CardInteractionData{
		LobbyID: lobbyID,
		CardID:  cardID,
		Kind:    kind,
	})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// GetLobbies requests the joinable lobby list
func (c *WSClient) GetLobbies() error {
	msg, err := NewMessage(MessageTypeGetLobbies, struct{}{})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// GetLobbyDetails requests the full membership of one lobby
func (c *WSClient) GetLobbyDetails(lobbyID string) error {
	msg, err := NewMessage(MessageTypeGetLobbyDetails, GetLobbyDetailsData{LobbyID: lobbyID})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}

// Ping sends an application-level latency probe
func (c *WSClient) Ping() error {
	msg, err := NewMessage(MessageTypePing, PingData{Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}
	return c.SendMessage(msg)
}
