package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants for the client-server protocol
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
	// The player-action type is bidirectional: clients send action requests
	// and the server broadcasts the accepted action under the same name
	MessageTypeCursorUpdate          MessageType = "cursor-update"
	MessageTypeCardInteractionUpdate MessageType = "card-interaction-update"
	MessageTypePong                  MessageType = "pong"

	// Error messages
	MessageTypeError            MessageType = "error"
	MessageTypeJoinLobbyError   MessageType = "join-lobby-error"
	MessageTypeStartGameError   MessageType = "start-game-error"
	MessageTypePokerActionError MessageType = "poker-action-error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
