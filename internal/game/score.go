package game

import (
	"fmt"

	hankin "github.com/paulhankin/poker"

	"lobbypoker-server/internal/deck"
)

// HandScore is the outcome of scoring a hand at showdown. Higher Value wins.
type HandScore struct {
	Rank        string `json:"rank"`
	Value       int    `json:"value"`
	Description string `json:"description"`
}

// Scorer scores a player's hole cards against the community cards. The game
// pays the pot to the strict maximum Value.
type Scorer func(hole, community []deck.Card) HandScore

// HighCard scores a hand by its single highest card value. This is the
// default comparator: it ignores pairs, straights and flushes entirely.
func HighCard(hole, community []deck.Card) HandScore {
	best := deck.Card{}
	for _, c := range append(append([]deck.Card{}, hole...), community...) {
		if c.Value() > best.Value() {
			best = c
		}
	}
	return HandScore{
		Rank:        "high-card",
		Value:       best.Value(),
		Description: fmt.Sprintf("High card: %s", best.Rank),
	}
}

// Eval7 scores a full 7-card hand with real poker rankings. Falls back to
// HighCard when fewer than seven cards are available.
func Eval7(hole, community []deck.Card) HandScore {
	cards := append(append([]deck.Card{}, hole...), community...)
	if len(cards) != 7 {
		return HighCard(hole, community)
	}

	var hand [7]hankin.Card
	for i, c := range cards {
		hc, err := hankinCard(c)
		if err != nil {
			return HighCard(hole, community)
		}
		hand[i] = hc
	}

	score := hankin.Eval7(&hand)
	desc, err := hankin.Describe(hand[:])
	if err != nil {
		desc = fmt.Sprintf("score %d", score)
	}

	return HandScore{
		Rank:        "eval7",
		Value:       int(score),
		Description: desc,
	}
}

// hankinCard converts a card to the evaluator's representation: suits
// ordered clubs/diamonds/hearts/spades, ranks 1-13 with ace low at 1.
func hankinCard(c deck.Card) (hankin.Card, error) {
	rank := int(c.Rank)
	if c.Rank == deck.Ace {
		rank = 1
	}

	var suit int
	switch c.Suit {
	case deck.Clubs:
		suit = 0
	case deck.Diamonds:
		suit = 1
	case deck.Hearts:
		suit = 2
	case deck.Spades:
		suit = 3
	}

	return hankin.MakeCard(hankin.Suit(suit), hankin.Rank(rank))
}

// ScorerByName maps a config scoring mode to a Scorer
func ScorerByName(name string) (Scorer, error) {
	switch name {
	case "", "high-card":
		return HighCard, nil
	case "eval7":
		return Eval7, nil
	}
	return nil, fmt.Errorf("unknown scoring mode: %q", name)
}
