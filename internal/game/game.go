package game

import (
	"fmt"
	"math/rand"
	"sync"

	"lobbypoker-server/internal/deck"
)

// Phase is the coarse lifecycle of a hand
type Phase int

const (
	PhaseBetting Phase = iota
	PhaseShowdown
	PhaseFinished
)

func (p Phase) String() string {
	return [...]string{"betting", "showdown", "finished"}[p]
}

// Street is the betting round within a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// Blinds is the forced-bet configuration for a game
type Blinds struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

// Seat describes a player joining a new game
type Seat struct {
	ID     string
	Name   string
	Avatar string
	Chips  int
}

// Result records how the hand ended and who won the pot
type Result struct {
	WinnerID   string     `json:"winnerId"`
	WinnerName string     `json:"winnerName"`
	Amount     int        `json:"amount"`
	Showdown   bool       `json:"showdown"`
	HandRank   *HandScore `json:"handRank,omitempty"`
}

// Game is the authoritative state for one poker hand. All mutation goes
// through Apply or ForceAdvance, which serialize on the game's lock, so at
// most one mutation is in flight at a time. Projections take the same lock
// and therefore never observe a torn state.
type Game struct {
	mu         sync.Mutex
	players    []*Player
	phase      Phase
	street     Street
	community  []deck.Card
	pot        int
	current    int // seat index of current actor, -1 when nobody can act
	dealer     int
	smallBlind int
	bigBlind   int
	deck       *deck.Deck
	lastRaise  int
	lastAction *ActionRecord
	blinds     Blinds
	scorer     Scorer
	result     *Result
}

// Option configures a new game
type Option func(*Game)

// WithScorer overrides the showdown scoring function
func WithScorer(s Scorer) Option {
	return func(g *Game) { g.scorer = s }
}

// New creates a game with blinds posted and hole cards dealt. The dealer is
// seat 0. Heads-up the dealer posts the small blind and the big blind acts
// first preflop; with three or more players the two seats after the dealer
// post the blinds and the seat after the big blind acts first.
func New(rng *rand.Rand, seats []Seat, blinds Blinds, opts ...Option) (*Game, error) {
	if len(seats) < 2 {
		return nil, ErrTooFewPlayers
	}
	if len(seats) > 8 {
		return nil, ErrTooManyPlayers
	}

	g := &Game{
		phase:     PhaseBetting,
		street:    Preflop,
		community: make([]deck.Card, 0, 5),
		deck:      deck.New(rng),
		lastRaise: blinds.Big,
		blinds:    blinds,
		scorer:    HighCard,
		dealer:    0,
	}
	for _, opt := range opts {
		opt(g)
	}

	for i, s := range seats {
		g.players = append(g.players, &Player{
			ID:        s.ID,
			Name:      s.Name,
			Avatar:    s.Avatar,
			Seat:      i,
			HoleCards: make([]deck.Card, 0, 2),
			Chips:     s.Chips,
			Active:    true,
		})
	}

	n := len(g.players)
	var firstActor int
	if n == 2 {
		g.smallBlind = g.dealer
		g.bigBlind = (g.dealer + 1) % n
		firstActor = g.bigBlind
	} else {
		g.smallBlind = (g.dealer + 1) % n
		g.bigBlind = (g.dealer + 2) % n
		firstActor = (g.bigBlind + 1) % n
	}

	g.post(g.players[g.smallBlind], blinds.Small)
	g.post(g.players[g.bigBlind], blinds.Big)

	if err := g.dealHoleCards(); err != nil {
		return nil, fmt.Errorf("dealing hole cards: %w", err)
	}

	g.current = g.nextEligible(firstActor)
	if g.current == -1 {
		// Blinds put everyone all-in, run the board out
		g.advanceStreet()
	}

	return g, nil
}

// post places a forced bet, capped at the player's stack. A short blind is
// an implicit all-in, not an error.
func (g *Game) post(p *Player, amount int) {
	bet := min(amount, p.Chips)
	p.Chips -= bet
	p.Bet = bet
	p.TotalBet = bet
	g.pot += bet
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// dealHoleCards deals one card per seat per pass, two passes
func (g *Game) dealHoleCards() error {
	for pass := 0; pass < 2; pass++ {
		for _, p := range g.players {
			if !p.Active {
				continue
			}
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}
	return nil
}

// Apply is the single mutation entry point for player actions
func (g *Game) Apply(playerID string, action Action, amount int) (*ActionRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseBetting {
		return nil, ErrHandComplete
	}
	if g.current < 0 || g.players[g.current].ID != playerID {
		return nil, ErrNotPlayersTurn
	}
	p := g.players[g.current]
	if p.Folded || !p.Active {
		return nil, ErrPlayerInactive
	}

	handler, ok := actionHandlers[action]
	if !ok {
		return nil, ErrUnknownAction
	}
	rec, err := handler(g, p, amount)
	if err != nil {
		return nil, err
	}

	g.lastAction = rec
	g.afterAction()
	return rec, nil
}

// ForceAdvance folds the given player if they are still the current actor.
// Driven by the turn watchdog, never by a player request. The identity check
// happens under the game's lock, so a timer that fires just as a real action
// lands cannot fold the next player's freshly received turn.
func (g *Game) ForceAdvance(playerID string) (*ActionRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseBetting || g.current < 0 {
		return nil, ErrHandComplete
	}

	p := g.players[g.current]
	if p.ID != playerID {
		return nil, ErrNotPlayersTurn
	}
	p.Folded = true
	rec := g.record(p, Fold.String(), 0)
	rec.Forced = true

	g.lastAction = rec
	g.afterAction()
	return rec, nil
}

// afterAction advances the actor and settles round/hand completion. Caller
// holds the lock.
func (g *Game) afterAction() {
	if g.countInHand() == 1 {
		g.finishByFolds()
		return
	}

	g.current = g.nextEligible(g.current + 1)

	if g.roundComplete() {
		g.advanceStreet()
	}
}

// currentBet is the table's current bet, derived on demand from the seats
// rather than cached (small player counts make the scan cheap).
func (g *Game) currentBet() int {
	cb := 0
	for _, p := range g.players {
		if p.Bet > cb {
			cb = p.Bet
		}
	}
	return cb
}

func (g *Game) countInHand() int {
	count := 0
	for _, p := range g.players {
		if p.InHand() {
			count++
		}
	}
	return count
}

// nextEligible scans circularly starting at from for a seat that can act
func (g *Game) nextEligible(from int) int {
	n := len(g.players)
	for i := 0; i < n; i++ {
		pos := (from + i) % n
		if g.players[pos].CanAct() {
			return pos
		}
	}
	return -1
}

// roundComplete reports whether the betting round is over: at most one
// player left in the hand, or every player who can still act has matched
// the current bet.
func (g *Game) roundComplete() bool {
	if g.countInHand() <= 1 {
		return true
	}
	cb := g.currentBet()
	for _, p := range g.players {
		if p.CanAct() && p.Bet < cb {
			return false
		}
	}
	return true
}

// advanceStreet resets round bets, reveals community cards and seats the
// next actor. When nobody can act (all-in runout) it recurses until the
// showdown.
func (g *Game) advanceStreet() {
	for _, p := range g.players {
		p.Bet = 0
	}

	if g.street == River {
		g.runShowdown()
		return
	}

	g.street++
	reveal := 1
	if g.street == Flop {
		reveal = 3
	}

	// Burn one, then reveal. The 52-card budget (8 seats max) means these
	// draws cannot exhaust the deck.
	_ = g.deck.Burn()
	for i := 0; i < reveal; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			break
		}
		g.community = append(g.community, card)
	}

	g.current = g.nextEligible((g.dealer + 1) % len(g.players))
	if g.current == -1 {
		g.advanceStreet()
	}
}

// finishByFolds awards the pot to the sole remaining player without a
// showdown or card reveal.
func (g *Game) finishByFolds() {
	var winner *Player
	for _, p := range g.players {
		if p.InHand() {
			winner = p
			break
		}
	}
	if winner == nil {
		g.phase = PhaseFinished
		g.current = -1
		return
	}

	amount := g.pot
	winner.Chips += amount
	g.pot = 0
	g.current = -1
	g.result = &Result{
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
		Amount:     amount,
		Showdown:   false,
	}
	g.phase = PhaseFinished
}

// runShowdown scores every player still in the hand and pays the strict
// maximum. Ties keep the earliest seat, preserving the original reduction
// order.
func (g *Game) runShowdown() {
	g.phase = PhaseShowdown
	g.current = -1

	var winner *Player
	for _, p := range g.players {
		if !p.InHand() {
			continue
		}
		score := g.scorer(p.HoleCards, g.community)
		p.Score = &score
		if winner == nil || score.Value > winner.Score.Value {
			winner = p
		}
	}

	if winner != nil {
		amount := g.pot
		winner.Chips += amount
		g.pot = 0
		g.result = &Result{
			WinnerID:   winner.ID,
			WinnerName: winner.Name,
			Amount:     amount,
			Showdown:   true,
			HandRank:   winner.Score,
		}
	}
	g.phase = PhaseFinished
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// CurrentActor returns the identity whose turn it is, if any
func (g *Game) CurrentActor() (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhaseBetting || g.current < 0 {
		return "", false
	}
	return g.players[g.current].ID, true
}

// Result returns the hand result once the game is finished
func (g *Game) Result() *Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// HasSeat reports whether the identity holds a seat in this game
func (g *Game) HasSeat(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, p := range g.players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// PlayerIDs returns the identities seated in this game, in seat order
func (g *Game) PlayerIDs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ids := make([]string, len(g.players))
	for i, p := range g.players {
		ids[i] = p.ID
	}
	return ids
}
