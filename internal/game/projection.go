package game

import (
	"lobbypoker-server/internal/deck"
)

// PlayerView is the per-viewer wire form of a seat
type PlayerView struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Avatar      string       `json:"avatar,omitempty"`
	Position    int          `json:"position"`
	Cards       []deck.Card  `json:"cards"`
	Bet         int          `json:"bet"`
	TotalBet    int          `json:"totalBet"`
	Chips       int          `json:"chips"`
	IsActive    bool         `json:"isActive"`
	IsFolded    bool         `json:"isFolded"`
	IsAllIn     bool         `json:"isAllIn"`
	HandRank    *HandScore   `json:"handRank"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

// View is a per-viewer snapshot of the game
type View struct {
	GameType           string        `json:"gameType"`
	Phase              string        `json:"gameState"`
	Round              string        `json:"round"`
	Players            []PlayerView  `json:"players"`
	CommunityCards     []deck.Card   `json:"communityCards"`
	Pot                int           `json:"pot"`
	CurrentPlayerIndex int           `json:"currentPlayerIndex"`
	CurrentBet         int           `json:"currentBet"`
	LastAction         *ActionRecord `json:"lastAction"`
	DealerIndex        int           `json:"dealerIndex"`
	Blinds             Blinds        `json:"blinds"`
	Result             *Result       `json:"result,omitempty"`
}

// Project returns the game state as seen by viewerID: every other seat's
// hole cards are blanked, and action suggestions are attached only when the
// viewer is the current actor. The snapshot is taken under the game lock so
// it is never torn by a concurrent mutation.
func (g *Game) Project(viewerID string) View {
	g.mu.Lock()
	defer g.mu.Unlock()

	players := make([]PlayerView, len(g.players))
	for i, p := range g.players {
		pv := PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Avatar:   p.Avatar,
			Position: p.Seat,
			Cards:    []deck.Card{},
			Bet:      p.Bet,
			TotalBet: p.TotalBet,
			Chips:    p.Chips,
			IsActive: p.Active,
			IsFolded: p.Folded,
			IsAllIn:  p.AllIn,
			HandRank: p.Score,
		}
		if p.ID == viewerID {
			pv.Cards = append(pv.Cards, p.HoleCards...)
			if g.phase == PhaseBetting && g.current == p.Seat {
				pv.Suggestions = g.suggestionsFor(p)
			}
		}
		players[i] = pv
	}

	community := make([]deck.Card, len(g.community))
	copy(community, g.community)

	return View{
		GameType:           "poker",
		Phase:              g.phase.String(),
		Round:              g.street.String(),
		Players:            players,
		CommunityCards:     community,
		Pot:                g.pot,
		CurrentPlayerIndex: g.current,
		CurrentBet:         g.currentBet(),
		LastAction:         g.lastAction,
		DealerIndex:        g.dealer,
		Blinds:             g.blinds,
		Result:             g.result,
	}
}
