package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lobbypoker-server/sdk"
)

type screen int

const (
	screenBrowse screen = iota
	screenLobby
	screenGame
)

type inputMode int

const (
	inputNone inputMode = iota
	inputLobbyName
	inputRaiseAmount
)

const feedSize = 8

// Model is the Bubble Tea model for the poker client. All authoritative
// state arrives from the server; the model only renders and sends requests.
type Model struct {
	client  *sdk.WSClient
	monitor *sdk.ConnectionMonitor

	name     string
	avatar   string
	playerID string

	screen  screen
	lobbies []sdk.LobbySummary
	cursor  int
	lobby   sdk.LobbyInfo
	state   *sdk.GameView

	feed      []string
	lastError string
	quality   sdk.Quality

	input textinput.Model
	mode  inputMode

	width  int
	height int
}

// New creates the client model
func New(client *sdk.WSClient, monitor *sdk.ConnectionMonitor, name, avatar string) *Model {
	ti := textinput.New()
	ti.CharLimit = 40
	ti.Width = 30

	return &Model{
		client:  client,
		monitor: monitor,
		name:    name,
		avatar:  avatar,
		screen:  screenBrowse,
		quality: sdk.QualityOffline,
		input:   ti,
	}
}

// Init requests the initial lobby list
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refreshLobbies())
}

func (m *Model) refreshLobbies() tea.Cmd {
	return func() tea.Msg {
		_ = m.client.GetLobbies()
		return nil
	}
}

// Update handles terminal and server events
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case identityMsg:
		m.playerID = msg.PlayerID

	case lobbyListMsg:
		m.lobbies = msg.Lobbies
		if m.cursor >= len(m.lobbies) {
			m.cursor = max(0, len(m.lobbies)-1)
		}

	case lobbyCreatedMsg:
		m.lobby = msg.Lobby
		m.screen = screenLobby
		m.lastError = ""
		m.addFeed(fmt.Sprintf("created lobby %q", msg.Lobby.Name))

	case lobbyJoinedMsg:
		m.lobby = msg.Lobby
		m.lastError = ""
		if msg.Lobby.Started {
			m.screen = screenGame
		} else {
			m.screen = screenLobby
		}

	case lobbyUpdatedMsg:
		if msg.Lobby.ID == m.lobby.ID {
			m.lobby = msg.Lobby
		}

	case playerJoinedMsg:
		if msg.LobbyID == m.lobby.ID {
			m.addFeed(fmt.Sprintf("%s joined", msg.Player.Name))
		}

	case playerLeftMsg:
		if msg.LobbyID == m.lobby.ID {
			m.addFeed("a player left")
		}

	case gameStartedMsg:
		if msg.LobbyID == m.lobby.ID {
			state := sdk.GameView(msg.State)
			m.state = &state
			m.screen = screenGame
			m.addFeed("game started")
		}

	case gameStateMsg:
		if msg.LobbyID == m.lobby.ID {
			state := msg.State
			m.state = &state
			m.screen = screenGame
		}

	case actionFeedMsg:
		if msg.LobbyID == m.lobby.ID {
			m.addFeed(formatAction(msg.Action))
		}

	case serverErrorMsg:
		m.lastError = msg.data.Message

	case qualityMsg:
		m.quality = sdk.Quality(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Text entry modes swallow every other key
	if m.mode != inputNone {
		switch msg.String() {
		case "esc":
			m.mode = inputNone
			m.input.Blur()
			return m, nil
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			m.input.Blur()
			mode := m.mode
			m.mode = inputNone
			return m, m.submitInput(mode, value)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch m.screen {
	case screenBrowse:
		return m.handleBrowseKey(msg)
	case screenLobby:
		return m.handleLobbyKey(msg)
	case screenGame:
		return m.handleGameKey(msg)
	}
	return m, nil
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.lobbies)-1 {
			m.cursor++
		}
	case "r":
		return m, m.refreshLobbies()
	case "c":
		m.mode = inputLobbyName
		m.input.Placeholder = "lobby name"
		m.input.Focus()
		return m, textinput.Blink
	case "enter":
		if m.cursor < len(m.lobbies) {
			id := m.lobbies[m.cursor].ID
			return m, func() tea.Msg {
				_ = m.client.JoinLobby(id)
				return nil
			}
		}
	}
	return m, nil
}

func (m *Model) handleLobbyKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s":
		if m.lobby.HostID == m.playerID {
			id := m.lobby.ID
			return m, func() tea.Msg {
				_ = m.client.StartGame(id)
				return nil
			}
		}
		m.lastError = "only the host can start the game"
	case "l":
		id := m.lobby.ID
		m.screen = screenBrowse
		m.lobby = sdk.LobbyInfo{}
		return m, tea.Batch(func() tea.Msg {
			_ = m.client.LeaveLobby(id)
			return nil
		}, m.refreshLobbies())
	}
	return m, nil
}

func (m *Model) handleGameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "f":
		return m, m.sendAction("fold", 0)
	case "k":
		return m, m.sendAction("check", 0)
	case "c":
		return m, m.sendAction("call", 0)
	case "a":
		return m, m.sendAction("all-in", 0)
	case "r":
		m.mode = inputRaiseAmount
		m.input.Placeholder = "raise amount"
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) submitInput(mode inputMode, value string) tea.Cmd {
	switch mode {
	case inputLobbyName:
		if value == "" {
			return nil
		}
		return func() tea.Msg {
			_ = m.client.CreateLobby(value, 0, sdk.Blinds{})
			return nil
		}
	case inputRaiseAmount:
		amount, err := strconv.Atoi(value)
		if err != nil || amount <= 0 {
			m.lastError = "raise amount must be a positive number"
			return nil
		}
		return m.sendAction("raise", amount)
	}
	return nil
}

func (m *Model) sendAction(action string, amount int) tea.Cmd {
	lobbyID := m.lobby.ID
	return func() tea.Msg {
		_ = m.client.SendAction(lobbyID, action, amount)
		return nil
	}
}

// myTurn reports whether the local player is the current actor
func (m *Model) myTurn() bool {
	if m.state == nil || m.state.CurrentPlayerIndex < 0 {
		return false
	}
	idx := m.state.CurrentPlayerIndex
	if idx >= len(m.state.Players) {
		return false
	}
	return m.state.Players[idx].ID == m.playerID
}

func (m *Model) addFeed(line string) {
	m.feed = append(m.feed, line)
	if len(m.feed) > feedSize {
		m.feed = m.feed[len(m.feed)-feedSize:]
	}
}

func formatAction(a sdk.ActionRecord) string {
	s := fmt.Sprintf("%s %s", a.PlayerName, a.Action)
	if a.Amount > 0 {
		s += fmt.Sprintf(" %d", a.Amount)
	}
	if a.Forced {
		s += " (timed out)"
	}
	return s
}
