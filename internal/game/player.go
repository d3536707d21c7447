package game

import (
	"lobbypoker-server/internal/deck"
)

// Player is a seat in a live game. It is owned exclusively by the Game and
// must only be touched while the Game's lock is held.
type Player struct {
	ID        string
	Name      string
	Avatar    string
	Seat      int
	HoleCards []deck.Card
	Bet       int // chips committed this betting round
	TotalBet  int // chips committed this hand
	Chips     int
	Folded    bool
	AllIn     bool
	Active    bool
	Score     *HandScore // set at showdown
}

// CanAct returns true if the player may be selected as the current actor
func (p *Player) CanAct() bool {
	return p.Active && !p.Folded && !p.AllIn
}

// InHand returns true if the player still has a claim on the pot
func (p *Player) InHand() bool {
	return p.Active && !p.Folded
}
