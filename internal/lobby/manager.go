package lobby

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"lobbypoker-server/internal/game"
	"lobbypoker-server/internal/randutil"
)

// Options tunes manager-wide defaults
type Options struct {
	// StartingChips is the stack issued to every member on join
	StartingChips int
	// DefaultMaxPlayers caps lobbies created without an explicit limit
	DefaultMaxPlayers int
	// Scorer decides showdowns for games started by this manager
	Scorer game.Scorer
	// NewRNG supplies the shuffle source for each started game
	NewRNG func() *rand.Rand
}

// Manager is the registry of all lobbies. Every operation takes the manager
// lock, so lobby membership and lifecycle transitions are serialized.
type Manager struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	opts    Options
	logger  *log.Logger
}

// NewManager creates an empty lobby registry
func NewManager(logger *log.Logger, opts Options) *Manager {
	if opts.StartingChips <= 0 {
		opts.StartingChips = 1000
	}
	if opts.DefaultMaxPlayers <= 0 {
		opts.DefaultMaxPlayers = 8
	}
	if opts.Scorer == nil {
		opts.Scorer = game.HighCard
	}
	if opts.NewRNG == nil {
		opts.NewRNG = func() *rand.Rand {
			return randutil.New(time.Now().UnixNano())
		}
	}
	return &Manager{
		lobbies: make(map[string]*Lobby),
		opts:    opts,
		logger:  logger.With("component", "lobby"),
	}
}

// Create registers a new lobby with the creator seated as host
func (m *Manager) Create(host Member, name string, maxPlayers int, blinds game.Blinds) *Lobby {
	if maxPlayers <= 0 || maxPlayers > 8 {
		maxPlayers = m.opts.DefaultMaxPlayers
	}
	if blinds.Small <= 0 {
		blinds.Small = 10
	}
	if blinds.Big <= 0 {
		blinds.Big = blinds.Small * 2
	}
	host.Chips = m.opts.StartingChips

	l := &Lobby{
		ID:         uuid.NewString(),
		Name:       name,
		HostID:     host.ID,
		Members:    []*Member{&host},
		MaxPlayers: maxPlayers,
		Blinds:     blinds,
		CreatedAt:  time.Now(),
	}

	m.mu.Lock()
	m.lobbies[l.ID] = l
	m.mu.Unlock()

	m.logger.Info("lobby created", "lobby", l.ID, "name", name, "host", host.Name)
	return l
}

// Join seats a member in a lobby. A seated member rejoining a running game
// resumes their session, which is how reconnecting clients re-enter a hand;
// before the game starts a duplicate join is an error, matching the lobby's
// one-seat-per-identity rule (disconnects evict members from unstarted
// lobbies, so only a live duplicate hits this path).
func (m *Manager) Join(lobbyID string, member Member) (*Lobby, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, false, ErrLobbyNotFound
	}
	if l.member(member.ID) != nil {
		if l.Started {
			return l, true, nil
		}
		return nil, false, ErrAlreadyJoined
	}
	if l.Started {
		return nil, false, ErrGameStarted
	}
	if len(l.Members) >= l.MaxPlayers {
		return nil, false, ErrLobbyFull
	}

	member.Chips = m.opts.StartingChips
	l.Members = append(l.Members, &member)
	m.logger.Info("player joined", "lobby", l.ID, "player", member.Name)
	return l, false, nil
}

// Leave removes a member. If the host leaves, the earliest remaining member
// inherits the role; an emptied lobby is dropped from the registry.
func (m *Manager) Leave(lobbyID, playerID string) (*Lobby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remove(lobbyID, playerID)
}

// remove implements Leave under the manager lock
func (m *Manager) remove(lobbyID, playerID string) (*Lobby, error) {
	l, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}

	idx := -1
	for i, mem := range l.Members {
		if mem.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotMember
	}

	l.Members = append(l.Members[:idx], l.Members[idx+1:]...)

	if len(l.Members) == 0 {
		delete(m.lobbies, l.ID)
		m.logger.Info("lobby closed", "lobby", l.ID)
		return l, nil
	}
	if l.HostID == playerID {
		l.HostID = l.Members[0].ID
		m.logger.Info("host transferred", "lobby", l.ID, "host", l.Members[0].Name)
	}
	return l, nil
}

// Start begins the game. Only the host may start, at least two members must
// be seated, and a lobby starts at most once.
func (m *Manager) Start(lobbyID, requesterID string) (*Lobby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	if l.HostID != requesterID {
		return nil, ErrNotHost
	}
	if l.Started {
		return nil, ErrGameStarted
	}
	if len(l.Members) < 2 {
		return nil, game.ErrTooFewPlayers
	}

	seats := make([]game.Seat, len(l.Members))
	for i, mem := range l.Members {
		seats[i] = game.Seat{ID: mem.ID, Name: mem.Name, Avatar: mem.Avatar, Chips: mem.Chips}
	}

	g, err := game.New(m.opts.NewRNG(), seats, l.Blinds, game.WithScorer(m.opts.Scorer))
	if err != nil {
		return nil, err
	}

	l.Started = true
	l.Game = g
	m.logger.Info("game started", "lobby", l.ID, "players", len(seats))
	return l, nil
}

// Get looks up a lobby by id
func (m *Manager) Get(lobbyID string) (*Lobby, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lobbies[lobbyID]
	if !ok {
		return nil, ErrLobbyNotFound
	}
	return l, nil
}

// ListPublic returns summaries of joinable lobbies, newest first. Started
// games are excluded from the browse list.
func (m *Manager) ListPublic() []Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := make([]Summary, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		if l.Started {
			continue
		}
		summaries = append(summaries, l.summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries
}

// InfoFor returns the full membership view of a lobby
func (m *Manager) InfoFor(lobbyID string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.lobbies[lobbyID]
	if !ok {
		return Info{}, ErrLobbyNotFound
	}
	return l.info(), nil
}

// HandleDisconnect detaches an identity from every lobby whose game has not
// started and reports the lobbies that changed. Seats in running games are
// kept so the player can rejoin after a reconnect.
func (m *Manager) HandleDisconnect(playerID string) []*Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()

	var affected []*Lobby
	for id, l := range m.lobbies {
		if l.Started || l.member(playerID) == nil {
			continue
		}
		if changed, err := m.remove(id, playerID); err == nil {
			affected = append(affected, changed)
		}
	}
	return affected
}

// FindByMember returns the lobby an identity is seated in, if any
func (m *Manager) FindByMember(playerID string) (*Lobby, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.lobbies {
		if l.member(playerID) != nil {
			return l, true
		}
	}
	return nil, false
}
