package tui

import (
	"fmt"
	"strings"

	"lobbypoker-server/sdk"
)

// View renders the current screen
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("lobbypoker"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  connection: %s", m.name, m.quality)))
	b.WriteString("\n\n")

	switch m.screen {
	case screenBrowse:
		b.WriteString(m.viewBrowse())
	case screenLobby:
		b.WriteString(m.viewLobby())
	case screenGame:
		b.WriteString(m.viewGame())
	}

	if m.mode != inputNone {
		b.WriteString("\n" + m.input.View() + "\n")
	}
	if m.lastError != "" {
		b.WriteString("\n" + errorStyle.Render(m.lastError) + "\n")
	}

	return b.String()
}

func (m *Model) viewBrowse() string {
	var b strings.Builder

	if len(m.lobbies) == 0 {
		b.WriteString(dimStyle.Render("no open lobbies") + "\n")
	}
	for i, l := range m.lobbies {
		line := fmt.Sprintf("%s  %d/%d players  blinds %d/%d  host %s",
			l.Name, l.Players, l.MaxPlayers, l.Blinds.Small, l.Blinds.Big, l.HostName)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + dimStyle.Render("enter join · c create · r refresh · q quit"))
	return b.String()
}

func (m *Model) viewLobby() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("lobby: %s\n\n", m.lobby.Name))
	for _, p := range m.lobby.Players {
		marker := "  "
		if p.ID == m.lobby.HostID {
			marker = successStyle.Render("★ ")
		}
		name := p.Name
		if p.ID == m.playerID {
			name += dimStyle.Render(" (you)")
		}
		b.WriteString(fmt.Sprintf("%s%s  %d chips\n", marker, name, p.Chips))
	}

	b.WriteString("\n")
	for _, line := range m.feed {
		b.WriteString(dimStyle.Render(line) + "\n")
	}

	hint := "l leave · q quit"
	if m.lobby.HostID == m.playerID {
		hint = "s start game · " + hint
	} else {
		hint = "waiting for the host to start · " + hint
	}
	b.WriteString("\n" + dimStyle.Render(hint))
	return b.String()
}

func (m *Model) viewGame() string {
	if m.state == nil {
		return dimStyle.Render("waiting for table state...")
	}
	s := m.state

	var b strings.Builder

	board := renderCards(s.CommunityCards)
	if board == "" {
		board = dimStyle.Render("(no community cards)")
	}
	table := fmt.Sprintf("%s   %s  %s",
		board,
		potStyle.Render(fmt.Sprintf("pot %d", s.Pot)),
		dimStyle.Render(fmt.Sprintf("bet %d · %s", s.CurrentBet, s.Round)))
	b.WriteString(tableBorderStyle.Render(table) + "\n\n")

	for i, p := range s.Players {
		b.WriteString(m.renderSeat(i, p) + "\n")
	}

	if s.Result != nil {
		b.WriteString("\n" + successStyle.Render(fmt.Sprintf("%s wins %d chips", s.Result.WinnerName, s.Result.Amount)))
		if s.Result.HandRank != nil {
			b.WriteString(successStyle.Render(" with " + s.Result.HandRank.Description))
		}
		b.WriteString("\n")
	}

	if len(m.feed) > 0 {
		b.WriteString("\n")
		for _, line := range m.feed {
			b.WriteString(dimStyle.Render(line) + "\n")
		}
	}

	if m.myTurn() {
		b.WriteString("\n" + turnStyle.Render("your turn") + "\n")
		for _, sugg := range m.suggestions() {
			b.WriteString(suggestionStyle.Render("· "+sugg) + "\n")
		}
		b.WriteString(dimStyle.Render("f fold · k check · c call · r raise · a all-in"))
	} else if s.CurrentPlayerIndex >= 0 && s.CurrentPlayerIndex < len(s.Players) {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("waiting for %s...", s.Players[s.CurrentPlayerIndex].Name)))
	}

	return b.String()
}

func (m *Model) renderSeat(i int, p sdk.PlayerView) string {
	var parts []string

	marker := "  "
	if m.state.CurrentPlayerIndex == i {
		marker = turnStyle.Render("→ ")
	}
	name := p.Name
	if p.ID == m.playerID {
		name += dimStyle.Render(" (you)")
	}
	if i == m.state.DealerIndex {
		name += dimStyle.Render(" [D]")
	}
	parts = append(parts, marker+name)

	if cards := renderCards(p.Cards); cards != "" {
		parts = append(parts, cards)
	}
	parts = append(parts, fmt.Sprintf("chips %d", p.Chips))
	if p.Bet > 0 {
		parts = append(parts, fmt.Sprintf("bet %d", p.Bet))
	}
	switch {
	case p.IsFolded:
		parts = append(parts, dimStyle.Render("folded"))
	case p.IsAllIn:
		parts = append(parts, errorStyle.Render("all-in"))
	}

	return strings.Join(parts, "  ")
}

// suggestions extracts the advisory lines attached to the local player
func (m *Model) suggestions() []string {
	var out []string
	for _, p := range m.state.Players {
		if p.ID != m.playerID {
			continue
		}
		for _, s := range p.Suggestions {
			line := s.Explanation
			if s.Amount > 0 {
				line = fmt.Sprintf("%s (%s %d)", s.Explanation, s.Action, s.Amount)
			}
			out = append(out, line)
		}
	}
	return out
}

var suitSymbols = map[string]string{
	"hearts":   "♥",
	"diamonds": "♦",
	"clubs":    "♣",
	"spades":   "♠",
}

func renderCards(cards []sdk.Card) string {
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, renderCard(c))
	}
	return strings.Join(rendered, " ")
}

func renderCard(c sdk.Card) string {
	symbol, ok := suitSymbols[c.Suit]
	if !ok {
		symbol = "?"
	}
	text := c.Rank + symbol
	if c.Suit == "hearts" || c.Suit == "diamonds" {
		return redCardStyle.Render(text)
	}
	return blackCardStyle.Render(text)
}
