package server

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobbypoker-server/internal/game"
	"lobbypoker-server/internal/lobby"
)

func newTestService(t *testing.T) (*GameService, *quartz.Mock) {
	t.Helper()
	mock := quartz.NewMock(t)
	srv := NewServer("localhost:0", testLogger())
	cfg := DefaultServerConfig()
	svc, err := NewGameService(srv, testLogger(), cfg, mock)
	require.NoError(t, err)
	srv.SetGameService(svc)
	t.Cleanup(svc.Stop)
	return svc, mock
}

func testMember(name string) lobby.Member {
	return lobby.Member{ID: name + "-id", Name: name}
}

func TestServiceCreateAndListLobbies(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "friday night"})

	require.NotEmpty(t, info.ID)
	assert.Equal(t, "alice-id", info.HostID)

	lobbies := svc.ListLobbies()
	require.Len(t, lobbies, 1)
	assert.Equal(t, "friday night", lobbies[0].Name)
}

func TestServiceJoinUnknownLobby(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.JoinLobby(testMember("bob"), "nope")
	assert.ErrorIs(t, err, lobby.ErrLobbyNotFound)
}

func TestServiceStartAndPlayHand(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)

	require.NoError(t, svc.StartGame(info.ID, "alice-id"))

	l, err := svc.manager.Get(info.ID)
	require.NoError(t, err)
	require.True(t, l.Started)
	require.NotNil(t, l.Game)

	// Heads-up: the big blind acts first; fold ends the hand
	actor, ok := l.Game.CurrentActor()
	require.True(t, ok)
	require.NoError(t, svc.HandleAction(actor, PlayerActionData{
		LobbyID: info.ID,
		Action:  "fold",
	}))
	assert.Equal(t, game.PhaseFinished, l.Game.Phase())
}

func TestServiceActionBeforeStart(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})

	err := svc.HandleAction("alice-id", PlayerActionData{LobbyID: info.ID, Action: "check"})
	assert.ErrorIs(t, err, lobby.ErrNotStarted)
}

func TestServiceActionOutOfTurn(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)
	require.NoError(t, svc.StartGame(info.ID, "alice-id"))

	l, err := svc.manager.Get(info.ID)
	require.NoError(t, err)
	actor, ok := l.Game.CurrentActor()
	require.True(t, ok)

	other := "alice-id"
	if actor == other {
		other = "bob-id"
	}
	err = svc.HandleAction(other, PlayerActionData{LobbyID: info.ID, Action: "fold"})
	require.Error(t, err)
	assert.True(t, game.IsValidationError(err))
}

func TestServiceRejectsUnknownAction(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)
	require.NoError(t, svc.StartGame(info.ID, "alice-id"))

	err = svc.HandleAction("alice-id", PlayerActionData{LobbyID: info.ID, Action: "splash-pot"})
	assert.ErrorIs(t, err, game.ErrUnknownAction)
}

func TestServiceTurnTimeoutForcesFold(t *testing.T) {
	svc, mock := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)
	require.NoError(t, svc.StartGame(info.ID, "alice-id"))

	l, err := svc.manager.Get(info.ID)
	require.NoError(t, err)
	actor, ok := l.Game.CurrentActor()
	require.True(t, ok)

	// Nobody acts; the watchdog folds the stalled actor, which heads-up
	// ends the hand immediately
	mock.Advance(30 * time.Second).MustWait(context.Background())

	require.Equal(t, game.PhaseFinished, l.Game.Phase())
	result := l.Game.Result()
	require.NotNil(t, result)
	assert.NotEqual(t, actor, result.WinnerID)
}

func TestServiceStaleTimeoutDoesNotFoldNextActor(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)
	require.NoError(t, svc.StartGame(info.ID, "alice-id"))

	l, err := svc.manager.Get(info.ID)
	require.NoError(t, err)
	first, ok := l.Game.CurrentActor()
	require.True(t, ok)

	// The first actor acts just as their timer fires; the late callback
	// carries the old actor and must not fold whoever holds the turn now
	require.NoError(t, svc.HandleAction(first, PlayerActionData{
		LobbyID: info.ID,
		Action:  "check",
	}))
	svc.handleTurnTimeout(info.ID, first)

	assert.Equal(t, game.PhaseBetting, l.Game.Phase())
	next, ok := l.Game.CurrentActor()
	require.True(t, ok)
	assert.NotEqual(t, first, next)
}

func TestServiceResumeAfterStart(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)
	require.NoError(t, svc.StartGame(info.ID, "alice-id"))

	// A reconnecting client re-presents its identity and rejoins
	got, resumed, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)
	assert.True(t, resumed)
	assert.True(t, got.Started)
}

func TestServiceDisconnectLeavesUnstartedLobby(t *testing.T) {
	svc, _ := newTestService(t)

	info := svc.CreateLobby(testMember("alice"), CreateLobbyData{Name: "table"})
	_, _, err := svc.JoinLobby(testMember("bob"), info.ID)
	require.NoError(t, err)

	svc.HandleDisconnect("bob-id")

	details, err := svc.LobbyDetails(info.ID)
	require.NoError(t, err)
	assert.Len(t, details.Players, 1)
}

func TestServiceAssignIdentity(t *testing.T) {
	svc, _ := newTestService(t)

	fresh := svc.AssignIdentity(JoinIdentityData{Name: "alice"})
	require.NotEmpty(t, fresh.PlayerID)
	assert.Equal(t, "alice", fresh.Name)

	// Reconnection presents the previous id and keeps it
	again := svc.AssignIdentity(JoinIdentityData{Name: "alice", PlayerID: fresh.PlayerID})
	assert.Equal(t, fresh.PlayerID, again.PlayerID)
}
