package lobby

import "errors"

var (
	ErrLobbyNotFound = errors.New("lobby not found")
	ErrLobbyFull     = errors.New("lobby is full")
	ErrAlreadyJoined = errors.New("already a member of this lobby")
	ErrGameStarted   = errors.New("game already started")
	ErrNotHost       = errors.New("only the host can start the game")
	ErrNotStarted    = errors.New("game has not started")
	ErrNotMember     = errors.New("not a member of this lobby")
)
