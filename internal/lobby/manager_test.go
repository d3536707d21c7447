package lobby

import (
	"io"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobbypoker-server/internal/game"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(log.New(io.Discard), Options{
		NewRNG: func() *rand.Rand { return rand.New(rand.NewSource(7)) },
	})
}

func member(name string) Member {
	return Member{ID: name + "-id", Name: name}
}

func TestCreateSeatsHostWithStartingChips(t *testing.T) {
	m := newTestManager(t)

	l := m.Create(member("alice"), "friday night", 6, game.Blinds{Small: 10, Big: 20})

	require.NotEmpty(t, l.ID)
	assert.Equal(t, "alice-id", l.HostID)
	require.Len(t, l.Members, 1)
	assert.Equal(t, 1000, l.Members[0].Chips)
	assert.Equal(t, 6, l.MaxPlayers)
	assert.False(t, l.Started)
}

func TestCreateAppliesDefaults(t *testing.T) {
	m := newTestManager(t)

	l := m.Create(member("alice"), "table", 0, game.Blinds{})

	assert.Equal(t, 8, l.MaxPlayers)
	assert.Equal(t, game.Blinds{Small: 10, Big: 20}, l.Blinds)
}

func TestJoinUnknownLobby(t *testing.T) {
	m := newTestManager(t)

	_, _, err := m.Join("nope", member("bob"))
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestJoinFullLobby(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "tiny", 2, game.Blinds{Small: 10, Big: 20})

	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)

	_, _, err = m.Join(l.ID, member("carol"))
	assert.ErrorIs(t, err, ErrLobbyFull)
}

func TestJoinStartedLobbyRejected(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)
	_, err = m.Start(l.ID, "alice-id")
	require.NoError(t, err)

	_, _, err = m.Join(l.ID, member("carol"))
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestDuplicateJoinBeforeStartRejected(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)

	// No game is running, so there is no session to resume
	_, _, err = m.Join(l.ID, member("bob"))
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	got, err := m.Get(l.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)
}

func TestRejoinAfterStartResumesSession(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)
	_, err = m.Start(l.ID, "alice-id")
	require.NoError(t, err)

	// A seated member may re-enter even though the game is running
	got, resumed, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.True(t, got.Started)
}

func TestLeaveTransfersHostInJoinOrder(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)
	_, _, err = m.Join(l.ID, member("carol"))
	require.NoError(t, err)

	got, err := m.Leave(l.ID, "alice-id")
	require.NoError(t, err)

	assert.Equal(t, "bob-id", got.HostID)
	assert.Len(t, got.Members, 2)
}

func TestLeaveLastMemberClosesLobby(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})

	_, err := m.Leave(l.ID, "alice-id")
	require.NoError(t, err)

	_, err = m.Get(l.ID)
	assert.ErrorIs(t, err, ErrLobbyNotFound)
}

func TestLeaveNonMember(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})

	_, err := m.Leave(l.ID, "mallory-id")
	assert.ErrorIs(t, err, ErrNotMember)
}

func TestStartRequiresHost(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)

	_, err = m.Start(l.ID, "bob-id")
	assert.ErrorIs(t, err, ErrNotHost)
}

func TestStartRequiresTwoPlayers(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})

	_, err := m.Start(l.ID, "alice-id")
	assert.ErrorIs(t, err, game.ErrTooFewPlayers)
}

func TestStartIsOneShot(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)

	got, err := m.Start(l.ID, "alice-id")
	require.NoError(t, err)
	require.NotNil(t, got.Game)
	assert.True(t, got.Game.HasSeat("alice-id"))
	assert.True(t, got.Game.HasSeat("bob-id"))

	_, err = m.Start(l.ID, "alice-id")
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestListPublicExcludesStartedLobbies(t *testing.T) {
	m := newTestManager(t)
	open := m.Create(member("alice"), "open table", 6, game.Blinds{Small: 10, Big: 20})
	running := m.Create(member("carol"), "running table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(running.ID, member("dave"))
	require.NoError(t, err)
	_, err = m.Start(running.ID, "carol-id")
	require.NoError(t, err)

	list := m.ListPublic()

	require.Len(t, list, 1)
	assert.Equal(t, open.ID, list[0].ID)
	assert.Equal(t, "alice", list[0].HostName)
	assert.Equal(t, 1, list[0].Players)
}

func TestHandleDisconnectLeavesUnstartedOnly(t *testing.T) {
	m := newTestManager(t)
	waiting := m.Create(member("alice"), "waiting", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(waiting.ID, member("bob"))
	require.NoError(t, err)

	running := m.Create(member("carol"), "running", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err = m.Join(running.ID, member("bob"))
	require.NoError(t, err)
	_, err = m.Start(running.ID, "carol-id")
	require.NoError(t, err)

	affected := m.HandleDisconnect("bob-id")

	// Removed from the waiting lobby
	require.Len(t, affected, 1)
	assert.Equal(t, waiting.ID, affected[0].ID)
	got, err := m.Get(waiting.ID)
	require.NoError(t, err)
	assert.Len(t, got.Members, 1)

	// Seat in the running game survives for reconnection
	got, err = m.Get(running.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.member("bob-id"))
}

func TestFindByMember(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})

	found, ok := m.FindByMember("alice-id")
	require.True(t, ok)
	assert.Equal(t, l.ID, found.ID)

	_, ok = m.FindByMember("nobody")
	assert.False(t, ok)
}

func TestInfoFor(t *testing.T) {
	m := newTestManager(t)
	l := m.Create(member("alice"), "table", 6, game.Blinds{Small: 10, Big: 20})
	_, _, err := m.Join(l.ID, member("bob"))
	require.NoError(t, err)

	info, err := m.InfoFor(l.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice-id", info.HostID)
	require.Len(t, info.Players, 2)
	assert.Equal(t, "bob", info.Players[1].Name)
	assert.False(t, info.Started)
}
