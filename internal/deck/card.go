package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the lowercase suit name used on the wire
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "?"
	}
}

// Symbol returns the unicode suit symbol for display
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the rank as it appears on the wire ("2".."10", "J", "Q", "K", "A")
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card represents an immutable playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns a short representation of a card (e.g. "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit.Symbol())
}

// ID returns the stable wire identifier for the card (e.g. "A_spades")
func (c Card) ID() string {
	return fmt.Sprintf("%s_%s", c.Rank, c.Suit)
}

// Value returns the numeric value of the card for comparison (2-14)
func (c Card) Value() int {
	return int(c.Rank)
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// cardJSON is the wire form clients consume
type cardJSON struct {
	ID    string `json:"id"`
	Rank  string `json:"rank"`
	Suit  string `json:"suit"`
	Value int    `json:"value"`
}

// MarshalJSON encodes the card as {id, rank, suit, value}
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{
		ID:    c.ID(),
		Rank:  c.Rank.String(),
		Suit:  c.Suit.String(),
		Value: c.Value(),
	})
}

// UnmarshalJSON decodes the {id, rank, suit, value} wire form
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	suit, ok := parseSuit(cj.Suit)
	if !ok {
		return fmt.Errorf("unknown suit: %q", cj.Suit)
	}
	rank, ok := parseRank(cj.Rank)
	if !ok {
		return fmt.Errorf("unknown rank: %q", cj.Rank)
	}

	c.Suit = suit
	c.Rank = rank
	return nil
}

func parseSuit(s string) (Suit, bool) {
	for suit := Hearts; suit <= Spades; suit++ {
		if suit.String() == s {
			return suit, true
		}
	}
	return 0, false
}

func parseRank(s string) (Rank, bool) {
	for rank := Two; rank <= Ace; rank++ {
		if rank.String() == s {
			return rank, true
		}
	}
	return 0, false
}
