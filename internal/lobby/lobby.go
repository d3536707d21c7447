package lobby

import (
	"time"

	"lobbypoker-server/internal/game"
)

// Member is a seated identity in a lobby. Members keep their join order,
// which decides host succession.
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Chips  int    `json:"chips"`
}

// Lobby is one table: a named room that collects members and, once started,
// owns the authoritative game. Field access is guarded by the manager's lock.
type Lobby struct {
	ID         string
	Name       string
	HostID     string
	Members    []*Member
	MaxPlayers int
	Blinds     game.Blinds
	Started    bool
	Game       *game.Game
	CreatedAt  time.Time
}

func (l *Lobby) member(playerID string) *Member {
	for _, m := range l.Members {
		if m.ID == playerID {
			return m
		}
	}
	return nil
}

// Summary is the wire form of a lobby in browse lists
type Summary struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	HostName   string      `json:"hostName"`
	Players    int         `json:"players"`
	MaxPlayers int         `json:"maxPlayers"`
	Blinds     game.Blinds `json:"blinds"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Info is the wire form of a single lobby's full membership
type Info struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	HostID     string      `json:"hostId"`
	Players    []Member    `json:"players"`
	MaxPlayers int         `json:"maxPlayers"`
	Blinds     game.Blinds `json:"blinds"`
	Started    bool        `json:"gameStarted"`
}

func (l *Lobby) summary() Summary {
	hostName := ""
	if host := l.member(l.HostID); host != nil {
		hostName = host.Name
	}
	return Summary{
		ID:         l.ID,
		Name:       l.Name,
		HostName:   hostName,
		Players:    len(l.Members),
		MaxPlayers: l.MaxPlayers,
		Blinds:     l.Blinds,
		CreatedAt:  l.CreatedAt,
	}
}

func (l *Lobby) info() Info {
	players := make([]Member, len(l.Members))
	for i, m := range l.Members {
		players[i] = *m
	}
	return Info{
		ID:         l.ID,
		Name:       l.Name,
		HostID:     l.HostID,
		Players:    players,
		MaxPlayers: l.MaxPlayers,
		Blinds:     l.Blinds,
		Started:    l.Started,
	}
}
