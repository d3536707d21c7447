package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"lobbypoker-server/sdk"
)

func testModel() *Model {
	client := sdk.NewWSClient("ws://localhost:8080/ws", log.New(io.Discard))
	m := New(client, nil, "alice", "")
	m.playerID = "alice-id"
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLobbyListUpdatesBrowseScreen(t *testing.T) {
	m := testModel()

	m.Update(lobbyListMsg{Lobbies: []sdk.LobbySummary{
		{ID: "l-1", Name: "friday night", HostName: "bob", Players: 2, MaxPlayers: 6},
		{ID: "l-2", Name: "high stakes", HostName: "carol", Players: 1, MaxPlayers: 8},
	}})

	view := m.View()
	if !strings.Contains(view, "friday night") || !strings.Contains(view, "high stakes") {
		t.Errorf("lobby names missing from browse view:\n%s", view)
	}
}

func TestBrowseCursorNavigation(t *testing.T) {
	m := testModel()
	m.lobbies = []sdk.LobbySummary{{ID: "l-1"}, {ID: "l-2"}, {ID: "l-3"}}

	m.Update(keyMsg("j"))
	m.Update(keyMsg("j"))
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}
	m.Update(keyMsg("j"))
	if m.cursor != 2 {
		t.Errorf("cursor moved past the last lobby: %d", m.cursor)
	}
	m.Update(keyMsg("k"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
}

func TestCursorClampedWhenListShrinks(t *testing.T) {
	m := testModel()
	m.lobbies = []sdk.LobbySummary{{ID: "l-1"}, {ID: "l-2"}, {ID: "l-3"}}
	m.cursor = 2

	m.Update(lobbyListMsg{Lobbies: []sdk.LobbySummary{{ID: "l-1"}}})
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after list shrank", m.cursor)
	}
}

func TestJoinedLobbySwitchesScreen(t *testing.T) {
	m := testModel()

	m.Update(lobbyJoinedMsg{Lobby: sdk.LobbyInfo{ID: "l-1", Name: "table"}})
	if m.screen != screenLobby {
		t.Errorf("screen = %d, want lobby", m.screen)
	}

	// Rejoining a lobby with a running game goes straight to the table
	m.Update(lobbyJoinedMsg{Lobby: sdk.LobbyInfo{ID: "l-1", Started: true}})
	if m.screen != screenGame {
		t.Errorf("screen = %d, want game", m.screen)
	}
}

func TestGameStateSwitchesToGameScreen(t *testing.T) {
	m := testModel()
	m.lobby = sdk.LobbyInfo{ID: "l-1"}

	m.Update(gameStateMsg{LobbyID: "l-1", State: sdk.GameView{
		Pot:                60,
		Round:              "flop",
		CurrentPlayerIndex: -1,
	}})

	if m.screen != screenGame {
		t.Fatalf("screen = %d, want game", m.screen)
	}
	if !strings.Contains(m.View(), "pot 60") {
		t.Errorf("pot missing from game view")
	}
}

func TestMyTurnDetection(t *testing.T) {
	m := testModel()
	m.lobby = sdk.LobbyInfo{ID: "l-1"}
	m.state = &sdk.GameView{
		CurrentPlayerIndex: 1,
		Players: []sdk.PlayerView{
			{ID: "bob-id", Name: "bob"},
			{ID: "alice-id", Name: "alice"},
		},
	}

	if !m.myTurn() {
		t.Error("expected my turn at index 1")
	}

	m.state.CurrentPlayerIndex = 0
	if m.myTurn() {
		t.Error("not my turn at index 0")
	}

	m.state.CurrentPlayerIndex = -1
	if m.myTurn() {
		t.Error("no turn when nobody can act")
	}
}

func TestServerErrorShownInView(t *testing.T) {
	m := testModel()

	m.Update(serverErrorMsg{
		kind: sdk.MessageTypePokerActionError,
		data: sdk.ErrorData{Code: "action_rejected", Message: "not your turn"},
	})

	if !strings.Contains(m.View(), "not your turn") {
		t.Error("server error missing from view")
	}
}

func TestActionFeedBounded(t *testing.T) {
	m := testModel()
	m.lobby = sdk.LobbyInfo{ID: "l-1"}

	for i := 0; i < feedSize*2; i++ {
		m.Update(actionFeedMsg{LobbyID: "l-1", Action: sdk.ActionRecord{PlayerName: "bob", Action: "check"}})
	}
	if len(m.feed) != feedSize {
		t.Errorf("feed length = %d, want %d", len(m.feed), feedSize)
	}
}

func TestFormatAction(t *testing.T) {
	tests := []struct {
		action sdk.ActionRecord
		want   string
	}{
		{sdk.ActionRecord{PlayerName: "bob", Action: "check"}, "bob check"},
		{sdk.ActionRecord{PlayerName: "bob", Action: "raise", Amount: 40}, "bob raise 40"},
		{sdk.ActionRecord{PlayerName: "bob", Action: "fold", Forced: true}, "bob fold (timed out)"},
	}
	for _, tt := range tests {
		if got := formatAction(tt.action); got != tt.want {
			t.Errorf("formatAction = %q, want %q", got, tt.want)
		}
	}
}

func TestRenderCardSymbols(t *testing.T) {
	card := sdk.Card{Rank: "A", Suit: "spades"}
	if got := renderCard(card); !strings.Contains(got, "A♠") {
		t.Errorf("renderCard = %q, want it to contain A♠", got)
	}
	card = sdk.Card{Rank: "10", Suit: "hearts"}
	if got := renderCard(card); !strings.Contains(got, "10♥") {
		t.Errorf("renderCard = %q, want it to contain 10♥", got)
	}
}
