package game

import (
	"testing"

	"lobbypoker-server/internal/deck"
)

func TestHighCardScoring(t *testing.T) {
	t.Parallel()

	hole := []deck.Card{card(deck.Ace, deck.Spades), card(deck.Two, deck.Hearts)}
	community := []deck.Card{
		card(deck.King, deck.Clubs),
		card(deck.Nine, deck.Diamonds),
		card(deck.Five, deck.Hearts),
	}

	score := HighCard(hole, community)
	if score.Value != 14 {
		t.Errorf("value = %d, want 14 (ace)", score.Value)
	}
	if score.Rank != "high-card" {
		t.Errorf("rank = %q, want high-card", score.Rank)
	}
	if score.Description != "High card: A" {
		t.Errorf("description = %q", score.Description)
	}
}

func TestHighCardIgnoresPairs(t *testing.T) {
	t.Parallel()

	community := []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Four, deck.Diamonds),
		card(deck.Five, deck.Hearts),
		card(deck.Six, deck.Spades),
		card(deck.Seven, deck.Clubs),
	}
	pair := HighCard([]deck.Card{card(deck.Nine, deck.Spades), card(deck.Nine, deck.Hearts)}, community)
	aceHigh := HighCard([]deck.Card{card(deck.Ace, deck.Spades), card(deck.Two, deck.Hearts)}, community)

	// The default comparator ranks only the top card, so ace-high beats a pair
	if aceHigh.Value <= pair.Value {
		t.Errorf("ace-high %d should outrank a pair %d under high-card scoring", aceHigh.Value, pair.Value)
	}
}

func TestEval7RanksPairOverHighCard(t *testing.T) {
	t.Parallel()

	community := []deck.Card{
		card(deck.Two, deck.Clubs),
		card(deck.Five, deck.Diamonds),
		card(deck.Nine, deck.Hearts),
		card(deck.Jack, deck.Spades),
		card(deck.Three, deck.Clubs),
	}
	pair := Eval7([]deck.Card{card(deck.Nine, deck.Spades), card(deck.Nine, deck.Clubs)}, community)
	high := Eval7([]deck.Card{card(deck.Ace, deck.Spades), card(deck.King, deck.Hearts)}, community)

	if pair.Value <= high.Value {
		t.Errorf("trips %d should outrank ace-high %d under eval7", pair.Value, high.Value)
	}
	if pair.Rank != "eval7" {
		t.Errorf("rank = %q, want eval7", pair.Rank)
	}
}

func TestEval7FallsBackWithoutFullBoard(t *testing.T) {
	t.Parallel()

	hole := []deck.Card{card(deck.Ace, deck.Spades), card(deck.King, deck.Hearts)}
	score := Eval7(hole, nil)
	if score.Rank != "high-card" {
		t.Errorf("rank = %q, want high-card fallback with a short board", score.Rank)
	}
	if score.Value != 14 {
		t.Errorf("value = %d, want 14", score.Value)
	}
}

func TestScorerByName(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"", "high-card", "eval7"} {
		if _, err := ScorerByName(name); err != nil {
			t.Errorf("ScorerByName(%q): %v", name, err)
		}
	}
	if _, err := ScorerByName("texas"); err == nil {
		t.Error("ScorerByName should reject unknown modes")
	}
}

func TestShowdownUsesConfiguredScorer(t *testing.T) {
	t.Parallel()

	calls := 0
	custom := func(hole, community []deck.Card) HandScore {
		calls++
		return HighCard(hole, community)
	}

	g := newTestGame(t, []string{"alice", "bob"}, 1000, Blinds{Small: 10, Big: 20}, WithScorer(custom))

	if _, err := g.Apply("bob-id", Check, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Apply("alice-id", Call, 0); err != nil {
		t.Fatal(err)
	}
	for g.Phase() == PhaseBetting {
		actor := g.players[g.current]
		if _, err := g.Apply(actor.ID, Check, 0); err != nil {
			t.Fatal(err)
		}
	}

	if calls != 2 {
		t.Errorf("scorer called %d times, want once per player in the hand", calls)
	}
}
