package deck

import (
	"errors"
	"math/rand"
)

// ErrDeckExhausted is returned when drawing from an empty deck. With at most
// 8 seats a full hand consumes 8*2 + 5 + 3 = 24 cards, so hitting this
// indicates a bookkeeping bug rather than a legitimate game state.
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck is an ordered 52-card deck consumed from the top. It is owned by
// exactly one game and is not safe for concurrent use.
type Deck struct {
	cards  []Card
	drawn  int
	burned int
}

// New creates a full 52-card deck shuffled with the provided RNG
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.shuffle(rng)
	return d
}

// shuffle is a Fisher-Yates shuffle over the remaining cards
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	d.drawn++
	return card, nil
}

// Burn discards the top card without revealing it
func (d *Deck) Burn() error {
	if len(d.cards) == 0 {
		return ErrDeckExhausted
	}
	d.cards = d.cards[1:]
	d.burned++
	return nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Drawn returns the number of cards dealt so far
func (d *Deck) Drawn() int {
	return d.drawn
}

// Burned returns the number of cards burned so far
func (d *Deck) Burned() int {
	return d.burned
}
