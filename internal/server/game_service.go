package server

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"lobbypoker-server/internal/game"
	"lobbypoker-server/internal/lobby"
)

// GameService orchestrates lobbies and games on top of the WebSocket hub.
// Connections call into it for every protocol request; it mutates the lobby
// registry and the games, then fans results out through the server.
type GameService struct {
	server   *Server
	manager  *lobby.Manager
	watchdog *TurnWatchdog
	logger   *log.Logger
}

// NewGameService creates the service and wires the turn watchdog
func NewGameService(server *Server, logger *log.Logger, cfg *ServerConfig, clock quartz.Clock) (*GameService, error) {
	scorer, err := game.ScorerByName(cfg.Game.Scoring)
	if err != nil {
		return nil, err
	}

	s := &GameService{
		server: server,
		manager: lobby.NewManager(logger, lobby.Options{
			StartingChips:     cfg.Game.StartingChips,
			DefaultMaxPlayers: cfg.Game.MaxPlayers,
			Scorer:            scorer,
		}),
		logger: logger.WithPrefix("service"),
	}
	s.watchdog = NewTurnWatchdog(clock, cfg.TurnTimeout(), logger, s.handleTurnTimeout)
	return s, nil
}

// AssignIdentity issues a player id, or accepts the one a reconnecting
// client presents so its lobby seat still matches.
func (s *GameService) AssignIdentity(data JoinIdentityData) IdentityAssignedData {
	playerID := data.PlayerID
	if playerID == "" {
		playerID = uuid.NewString()
	}
	s.logger.Info("identity assigned", "player", playerID, "name", data.Name)
	return IdentityAssignedData{
		PlayerID: playerID,
		Name:     data.Name,
		Avatar:   data.Avatar,
	}
}

// CreateLobby registers a lobby with the requester as host
func (s *GameService) CreateLobby(host lobby.Member, data CreateLobbyData) lobby.Info {
	l := s.manager.Create(host, data.Name, data.MaxPlayers, data.Blinds)
	info, _ := s.manager.InfoFor(l.ID)
	s.broadcastLobbies()
	return info
}

// JoinLobby seats a member and notifies the room. Reports whether the join
// resumed an existing seat.
func (s *GameService) JoinLobby(member lobby.Member, lobbyID string) (lobby.Info, bool, error) {
	l, resumed, err := s.manager.Join(lobbyID, member)
	if err != nil {
		return lobby.Info{}, false, err
	}

	info, err := s.manager.InfoFor(l.ID)
	if err != nil {
		return lobby.Info{}, false, err
	}

	if !resumed {
		s.broadcastToLobby(l, member.ID, MessageTypePlayerJoined, PlayerJoinedData{
			LobbyID: l.ID,
			Player:  member,
		})
		s.broadcastLobbyUpdate(l)
		s.broadcastLobbies()
	}

	// A member rejoining a running game needs the table state immediately
	if resumed && l.Started && l.Game != nil {
		s.sendGameState(l, member.ID, MessageTypeGameStateUpdated)
	}

	return info, resumed, nil
}

// LeaveLobby removes a member and notifies the room
func (s *GameService) LeaveLobby(lobbyID, playerID string) error {
	l, err := s.manager.Leave(lobbyID, playerID)
	if err != nil {
		return err
	}

	if len(l.Members) > 0 {
		s.broadcastToLobby(l, "", MessageTypePlayerLeft, PlayerLeftData{
			LobbyID:  l.ID,
			PlayerID: playerID,
			HostID:   l.HostID,
		})
		s.broadcastLobbyUpdate(l)
	} else {
		s.watchdog.Disarm(l.ID)
	}
	s.broadcastLobbies()
	return nil
}

// StartGame begins the hand and pushes each member their own view
func (s *GameService) StartGame(lobbyID, playerID string) error {
	l, err := s.manager.Start(lobbyID, playerID)
	if err != nil {
		return err
	}

	for _, m := range l.Members {
		s.sendGameState(l, m.ID, MessageTypeGameStarted)
	}
	s.broadcastLobbies()
	s.armForCurrentActor(l)
	return nil
}

// HandleAction applies a player's betting action and fans out the result
func (s *GameService) HandleAction(playerID string, data PlayerActionData) error {
	l, err := s.manager.Get(data.LobbyID)
	if err != nil {
		return err
	}
	if !l.Started || l.Game == nil {
		return lobby.ErrNotStarted
	}

	action, err := game.ParseAction(data.Action)
	if err != nil {
		return err
	}

	rec, err := l.Game.Apply(playerID, action, data.Amount)
	if err != nil {
		return err
	}

	s.logger.Info("action applied", "lobby", l.ID, "player", rec.PlayerName, "action", rec.Kind, "amount", rec.Amount)
	s.afterGameMutation(l, rec)
	return nil
}

// handleTurnTimeout force-folds the stalled actor. The fold only lands if
// playerID is still on the clock; a timer firing concurrently with a real
// action for that seat is rejected inside the game and ignored here.
func (s *GameService) handleTurnTimeout(lobbyID, playerID string) {
	l, err := s.manager.Get(lobbyID)
	if err != nil || l.Game == nil {
		return
	}

	rec, err := l.Game.ForceAdvance(playerID)
	if err != nil {
		return
	}

	s.logger.Info("forced fold", "lobby", l.ID, "player", rec.PlayerName)
	s.afterGameMutation(l, rec)
}

// afterGameMutation broadcasts the accepted action, refreshes every member's
// view and manages the turn timer.
func (s *GameService) afterGameMutation(l *lobby.Lobby, rec *game.ActionRecord) {
	s.broadcastToLobby(l, "", MessageTypePlayerAction, ActionBroadcastData{
		LobbyID: l.ID,
		Action:  *rec,
	})
	for _, m := range l.Members {
		s.sendGameState(l, m.ID, MessageTypeGameStateUpdated)
	}

	if l.Game.Phase() == game.PhaseFinished {
		s.watchdog.Disarm(l.ID)
		return
	}
	s.armForCurrentActor(l)
}

// armForCurrentActor puts the seat whose turn it is on the clock
func (s *GameService) armForCurrentActor(l *lobby.Lobby) {
	actor, ok := l.Game.CurrentActor()
	if !ok {
		s.watchdog.Disarm(l.ID)
		return
	}
	s.watchdog.Arm(l.ID, actor)
}

// RelayCursor forwards a cursor position to the rest of the room. Presence
// traffic never touches game state and is silently dropped for non-members.
func (s *GameService) RelayCursor(playerID string, data CursorMoveData) {
	l, err := s.manager.Get(data.LobbyID)
	if err != nil {
		return
	}
	s.broadcastToLobby(l, playerID, MessageTypeCursorUpdate, CursorUpdateData{
		LobbyID:  l.ID,
		PlayerID: playerID,
		X:        data.X,
		Y:        data.Y,
	})
}

// RelayCardInteraction forwards a card hover/tap to the rest of the room
func (s *GameService) RelayCardInteraction(playerID string, data CardInteractionData) {
	l, err := s.manager.Get(data.LobbyID)
	if err != nil {
		return
	}
	s.broadcastToLobby(l, playerID, MessageTypeCardInteractionUpdate, CardInteractionUpdateData{
		LobbyID:  l.ID,
		PlayerID: playerID,
		CardID:   data.CardID,
		Kind:     data.Kind,
	})
}

// ListLobbies returns the joinable lobby summaries
func (s *GameService) ListLobbies() []lobby.Summary {
	return s.manager.ListPublic()
}

// LobbyDetails returns the full membership view of one lobby
func (s *GameService) LobbyDetails(lobbyID string) (lobby.Info, error) {
	return s.manager.InfoFor(lobbyID)
}

// HandleDisconnect detaches the identity from unstarted lobbies and tells
// the affected rooms. Seats in running games are kept for reconnection.
func (s *GameService) HandleDisconnect(playerID string) {
	affected := s.manager.HandleDisconnect(playerID)
	for _, l := range affected {
		if len(l.Members) > 0 {
			s.broadcastToLobby(l, "", MessageTypePlayerLeft, PlayerLeftData{
				LobbyID:  l.ID,
				PlayerID: playerID,
				HostID:   l.HostID,
			})
			s.broadcastLobbyUpdate(l)
		}
	}
	if len(affected) > 0 {
		s.broadcastLobbies()
	}
}

// Stop releases the watchdog timers
func (s *GameService) Stop() {
	s.watchdog.Stop()
}

// sendGameState pushes a member their own projection of the table
func (s *GameService) sendGameState(l *lobby.Lobby, playerID string, msgType MessageType) {
	if l.Game == nil {
		return
	}
	msg, err := NewMessage(msgType, GameStateUpdatedData{
		LobbyID: l.ID,
		State:   l.Game.Project(playerID),
	})
	if err != nil {
		s.logger.Error("failed to build game state message", "error", err)
		return
	}
	_ = s.server.SendToPlayer(playerID, msg)
}

// broadcastToLobby sends a payload to every member except exceptID
func (s *GameService) broadcastToLobby(l *lobby.Lobby, exceptID string, msgType MessageType, data interface{}) {
	msg, err := NewMessage(msgType, data)
	if err != nil {
		s.logger.Error("failed to build lobby message", "error", err, "type", msgType)
		return
	}
	for _, m := range l.Members {
		if m.ID == exceptID {
			continue
		}
		_ = s.server.SendToPlayer(m.ID, msg)
	}
}

// broadcastLobbyUpdate refreshes the room's own membership view
func (s *GameService) broadcastLobbyUpdate(l *lobby.Lobby) {
	info, err := s.manager.InfoFor(l.ID)
	if err != nil {
		return
	}
	s.broadcastToLobby(l, "", MessageTypeLobbyUpdated, LobbyUpdatedData{Lobby: info})
}

// broadcastLobbies refreshes the browse list for every connected client
func (s *GameService) broadcastLobbies() {
	msg, err := NewMessage(MessageTypeLobbiesUpdated, LobbyListData{Lobbies: s.manager.ListPublic()})
	if err != nil {
		return
	}
	s.server.Broadcast(msg)
}
