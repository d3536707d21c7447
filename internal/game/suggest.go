package game

import (
	"fmt"

	"lobbypoker-server/internal/deck"
)

// Suggestion is advisory output attached to the acting player's projection.
// It never alters authoritative state.
type Suggestion struct {
	Action      string `json:"action"`
	Amount      int    `json:"amount,omitempty"`
	Explanation string `json:"explanation"`
	Reasoning   string `json:"reasoning"`
	Confidence  string `json:"confidence"`
	Highlight   bool   `json:"highlight,omitempty"`
	IsBluff     bool   `json:"isBluff,omitempty"`
}

type handStrength struct {
	strength    float64
	handType    string
	description string
}

// suggestionsFor builds the decision table for the acting player. Caller
// holds the game lock.
func (g *Game) suggestionsFor(p *Player) []Suggestion {
	var suggestions []Suggestion

	currentBet := g.currentBet()
	callAmount := currentBet - p.Bet
	potOdds := 0.0
	if g.pot > 0 {
		potOdds = float64(callAmount) / float64(g.pot+callAmount)
	}

	hs := analyzeHandStrength(p.HoleCards, g.community)
	position := g.position(p)
	inHand := g.countInHand()

	switch {
	case hs.strength >= 0.8:
		suggestions = append(suggestions, Suggestion{
			Action:      Raise.String(),
			Amount:      min(g.pot/2, p.Chips),
			Explanation: fmt.Sprintf("%s hand! Raise to build the pot.", hs.description),
			Reasoning:   fmt.Sprintf("With %s you are likely ahead; betting builds the pot while you have the best hand.", hs.handType),
			Confidence:  "high",
			Highlight:   true,
		})
		if p.Chips > g.pot {
			suggestions = append(suggestions, Suggestion{
				Action:      AllIn.String(),
				Amount:      p.Chips,
				Explanation: "Premium hand - consider going all-in for maximum value.",
				Reasoning:   "Get maximum value in before opponents realize their weakness.",
				Confidence:  "medium",
			})
		}

	case hs.strength >= 0.6:
		suggestions = append(suggestions, Suggestion{
			Action:      Raise.String(),
			Amount:      min(g.pot/3, p.Chips),
			Explanation: fmt.Sprintf("Good hand in %s position. A moderate raise shows strength.", position),
			Reasoning:   "Strong enough to bet for value without pricing out every opponent.",
			Confidence:  "medium",
			Highlight:   true,
		})
		if callAmount <= p.Chips/10 {
			suggestions = append(suggestions, Suggestion{
				Action:      Call.String(),
				Explanation: "Solid hand with good pot odds - calling keeps weaker hands in.",
				Reasoning:   fmt.Sprintf("Pot odds of %.1f%% make this a profitable call.", potOdds*100),
				Confidence:  "high",
			})
		}

	case hs.strength >= 0.4:
		switch {
		case callAmount == 0:
			suggestions = append(suggestions, Suggestion{
				Action:      Check.String(),
				Explanation: "Marginal hand - check to see the next card for free.",
				Reasoning:   "No need to invest more with a medium-strength hand when the next card is free.",
				Confidence:  "high",
				Highlight:   true,
			})
		case potOdds < 0.25 && callAmount*100 <= p.Chips*15:
			suggestions = append(suggestions, Suggestion{
				Action:      Call.String(),
				Explanation: "Decent drawing hand with reasonable pot odds.",
				Reasoning:   fmt.Sprintf("The hand can improve and %.1f%% pot odds justify a call.", potOdds*100),
				Confidence:  "medium",
			})
		default:
			suggestions = append(suggestions, Suggestion{
				Action:      Fold.String(),
				Explanation: "Marginal hand with poor pot odds - folding saves chips.",
				Reasoning:   fmt.Sprintf("A %d chip call is not justified at this hand strength.", callAmount),
				Confidence:  "medium",
				Highlight:   true,
			})
		}

	default:
		if callAmount == 0 {
			suggestions = append(suggestions, Suggestion{
				Action:      Check.String(),
				Explanation: "Weak hand but free to continue - always check when free.",
				Reasoning:   "Never fold when checking is free, even with weak hands.",
				Confidence:  "high",
				Highlight:   true,
			})
		} else {
			suggestions = append(suggestions, Suggestion{
				Action:      Fold.String(),
				Explanation: "Weak hand and expensive to continue - fold to preserve chips.",
				Reasoning:   fmt.Sprintf("With %s and %d chips to call, folding is the correct play.", hs.description, callAmount),
				Confidence:  "high",
				Highlight:   true,
			})
		}
	}

	// Steal opportunity against few opponents from late position
	if hs.strength < 0.3 && inHand <= 3 && position == "late" && g.street != Preflop {
		suggestions = append(suggestions, Suggestion{
			Action:      Raise.String(),
			Amount:      min(g.pot*3/5, p.Chips),
			Explanation: "Bluff opportunity: few opponents and good position for a steal.",
			Reasoning:   "With few opponents and late position, a well-timed bluff can take the pot.",
			Confidence:  "low",
			IsBluff:     true,
		})
	}

	return suggestions
}

// position classifies the seat relative to the dealer
func (g *Game) position(p *Player) string {
	total := 0
	for _, pl := range g.players {
		if pl.Active {
			total++
		}
	}
	if total == 0 {
		return "early"
	}
	rel := (p.Seat - g.dealer + total) % total

	switch {
	case total <= 3:
		if rel == 0 {
			return "dealer"
		}
		if rel == 1 {
			return "early"
		}
		return "late"
	case total <= 6:
		if rel <= 1 {
			return "early"
		}
		if rel <= 3 {
			return "middle"
		}
		return "late"
	default:
		if rel <= 2 {
			return "early"
		}
		if rel <= 4 {
			return "middle"
		}
		return "late"
	}
}

// analyzeHandStrength classifies the hole cards (pairs, broadways, suited
// connectors) and adds a small draw bonus once the flop is out.
func analyzeHandStrength(hole, community []deck.Card) handStrength {
	if len(hole) < 2 {
		return handStrength{strength: 0, handType: "no cards", description: "Weak"}
	}

	v0, v1 := hole[0].Value(), hole[1].Value()
	suited := hole[0].Suit == hole[1].Suit
	high, low := max(v0, v1), min(v0, v1)
	gap := high - low

	var hs handStrength
	switch {
	case v0 == v1:
		switch {
		case v0 >= 10:
			hs = handStrength{0.8, "premium pair", "Premium"}
		case v0 >= 7:
			hs = handStrength{0.6, "medium pair", "Strong"}
		default:
			hs = handStrength{0.4, "low pair", "Medium"}
		}
	case high == int(deck.Ace):
		switch {
		case low >= 10 && suited:
			hs = handStrength{0.7, "suited ace-high", "Strong"}
		case low >= 10:
			hs = handStrength{0.5, "ace-high", "Strong"}
		case low >= 7 && suited:
			hs = handStrength{0.4, "ace with kicker", "Medium"}
		case low >= 7:
			hs = handStrength{0.3, "ace with kicker", "Medium"}
		default:
			hs = handStrength{0.2, "weak ace", "Weak"}
		}
	case high >= 11 && low >= 10:
		if suited {
			hs = handStrength{0.5, "suited broadways", "Medium"}
		} else {
			hs = handStrength{0.3, "broadway cards", "Medium"}
		}
	case suited && gap <= 1:
		hs = handStrength{0.4, "suited connector", "Medium"}
	case gap <= 1 && low >= 7:
		hs = handStrength{0.3, "connector", "Medium"}
	default:
		hs = handStrength{float64(high) / 20, "high card", "Weak"}
	}

	if len(community) >= 3 {
		if suited {
			flushCount := 0
			for _, c := range community {
				if c.Suit == hole[0].Suit {
					flushCount++
				}
			}
			if flushCount >= 2 {
				hs.strength += 0.1
				hs.description = "Drawing"
			}
		}
		// Small equity bump for board texture
		hs.strength += 0.05
	}

	if hs.strength > 1 {
		hs.strength = 1
	}
	return hs
}
