package game

// Action is a closed enum of betting actions. Dispatch goes through
// actionHandlers so an unhandled action kind is a compile-time gap in the
// map literal rather than a silently ignored string.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

// String returns the wire name of the action
func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "all-in"}[a]
}

// ParseAction maps a wire action name to an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	case "all-in", "allin":
		return AllIn, nil
	}
	return 0, ErrUnknownAction
}

// ActionRecord is the last successful action, broadcast to all players for
// the activity feed.
type ActionRecord struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Kind       string `json:"action"`
	Amount     int    `json:"amount"`
	Forced     bool   `json:"forced,omitempty"`
}

type actionHandler func(g *Game, p *Player, amount int) (*ActionRecord, error)

var actionHandlers = map[Action]actionHandler{
	Fold:  handleFold,
	Check: handleCheck,
	Call:  handleCall,
	Raise: handleRaise,
	AllIn: handleAllIn,
}

func handleFold(g *Game, p *Player, _ int) (*ActionRecord, error) {
	p.Folded = true
	return g.record(p, Fold.String(), 0), nil
}

func handleCheck(g *Game, p *Player, _ int) (*ActionRecord, error) {
	if p.Bet < g.currentBet() {
		return nil, ErrIllegalCheck
	}
	return g.record(p, Check.String(), 0), nil
}

func handleCall(g *Game, p *Player, _ int) (*ActionRecord, error) {
	toCall := g.currentBet() - p.Bet
	pay := min(toCall, p.Chips)

	p.Chips -= pay
	p.Bet += pay
	p.TotalBet += pay
	g.pot += pay
	if p.Chips == 0 {
		p.AllIn = true
	}

	// A call with nothing owed is recorded as a check
	kind := Call.String()
	if pay == 0 {
		kind = Check.String()
	}
	return g.record(p, kind, pay), nil
}

func handleRaise(g *Game, p *Player, amount int) (*ActionRecord, error) {
	if amount <= 0 {
		return nil, ErrBelowMinimumRaise
	}
	owed := g.currentBet() - p.Bet + amount
	if owed > p.Chips {
		return nil, ErrInsufficientChips
	}
	// A short raise is only legal as an all-in
	if amount < g.lastRaise && p.Chips > owed {
		return nil, ErrBelowMinimumRaise
	}

	p.Chips -= owed
	p.Bet += owed
	p.TotalBet += owed
	g.pot += owed
	g.lastRaise = amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return g.record(p, Raise.String(), amount), nil
}

func handleAllIn(g *Game, p *Player, _ int) (*ActionRecord, error) {
	pay := p.Chips
	p.Chips = 0
	p.Bet += pay
	p.TotalBet += pay
	g.pot += pay
	p.AllIn = true
	return g.record(p, AllIn.String(), pay), nil
}

func (g *Game) record(p *Player, kind string, amount int) *ActionRecord {
	return &ActionRecord{
		PlayerID:   p.ID,
		PlayerName: p.Name,
		Kind:       kind,
		Amount:     amount,
	}
}
