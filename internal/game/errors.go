package game

import "errors"

// Validation failures. All are recoverable: the game state is unchanged and
// the error is reported to the requester only.
var (
	ErrNotPlayersTurn    = errors.New("not your turn")
	ErrPlayerInactive    = errors.New("player is not active")
	ErrIllegalCheck      = errors.New("cannot check, must call or fold")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrBelowMinimumRaise = errors.New("raise below minimum")
	ErrUnknownAction     = errors.New("unknown action")
	ErrHandComplete      = errors.New("hand is complete")
)

// Construction failures
var (
	ErrTooFewPlayers  = errors.New("need at least 2 players")
	ErrTooManyPlayers = errors.New("at most 8 players")
)

// IsValidationError reports whether err is an illegal-action error that
// should be unicast to the requester as a poker-action-error.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrNotPlayersTurn),
		errors.Is(err, ErrPlayerInactive),
		errors.Is(err, ErrIllegalCheck),
		errors.Is(err, ErrInsufficientChips),
		errors.Is(err, ErrBelowMinimumRaise),
		errors.Is(err, ErrUnknownAction),
		errors.Is(err, ErrHandComplete):
		return true
	}
	return false
}
