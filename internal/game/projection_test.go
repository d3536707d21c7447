package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestProjectionHidesOtherHoleCards(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, []string{"alice", "bob", "carol"}, 1000, Blinds{Small: 10, Big: 20})

	view := g.Project("bob-id")

	for _, pv := range view.Players {
		switch pv.ID {
		case "bob-id":
			if len(pv.Cards) != 2 {
				t.Errorf("viewer sees %d of their own cards, want 2", len(pv.Cards))
			}
		default:
			if len(pv.Cards) != 0 {
				t.Errorf("viewer sees %d of %s's cards, want 0", len(pv.Cards), pv.Name)
			}
		}
	}
}

func TestProjectionNeverLeaksCardsOverWire(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, []string{"alice", "bob"}, 1000, Blinds{Small: 10, Big: 20})

	// Collect alice's card IDs, then check bob's serialized view for them
	aliceView := g.Project("alice-id")
	var aliceCards []string
	for _, pv := range aliceView.Players {
		if pv.ID == "alice-id" {
			for _, c := range pv.Cards {
				aliceCards = append(aliceCards, c.ID())
			}
		}
	}
	if len(aliceCards) != 2 {
		t.Fatalf("expected 2 alice cards, got %d", len(aliceCards))
	}

	raw, err := json.Marshal(g.Project("bob-id"))
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range aliceCards {
		if strings.Contains(string(raw), id) {
			t.Errorf("bob's projection leaks alice's card %s", id)
		}
	}
}

func TestProjectionSuggestionsOnlyForActor(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, []string{"alice", "bob", "carol"}, 1000, Blinds{Small: 10, Big: 20})

	// alice is the current actor
	view := g.Project("alice-id")
	for _, pv := range view.Players {
		if pv.ID == "alice-id" && len(pv.Suggestions) == 0 {
			t.Error("current actor got no suggestions in their own view")
		}
	}

	// bob viewing the table sees no suggestions anywhere
	view = g.Project("bob-id")
	for _, pv := range view.Players {
		if len(pv.Suggestions) != 0 {
			t.Errorf("non-actor view carries suggestions for %s", pv.Name)
		}
	}
}

func TestProjectionCurrentBetIsDerived(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, []string{"alice", "bob", "carol"}, 1000, Blinds{Small: 10, Big: 20})

	if got := g.Project("alice-id").CurrentBet; got != 20 {
		t.Errorf("currentBet = %d, want 20 (big blind)", got)
	}

	if _, err := g.Apply("alice-id", Raise, 40); err != nil {
		t.Fatal(err)
	}
	if got := g.Project("bob-id").CurrentBet; got != 60 {
		t.Errorf("currentBet = %d, want 60 after raise", got)
	}
}

func TestProjectionCommunityCardsShared(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, []string{"alice", "bob"}, 1000, Blinds{Small: 10, Big: 20})

	if _, err := g.Apply("bob-id", Check, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Apply("alice-id", Call, 0); err != nil {
		t.Fatal(err)
	}

	a := g.Project("alice-id")
	b := g.Project("bob-id")
	if len(a.CommunityCards) != 3 || len(b.CommunityCards) != 3 {
		t.Fatalf("flop cards: alice sees %d, bob sees %d, want 3 each", len(a.CommunityCards), len(b.CommunityCards))
	}
	for i := range a.CommunityCards {
		if a.CommunityCards[i] != b.CommunityCards[i] {
			t.Error("community cards differ between viewers")
		}
	}
}
