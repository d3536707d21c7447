package server

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// TurnWatchdog force-folds players who sit on their turn too long. One timer
// is armed per lobby; every accepted action rearms it for the next actor and
// a finished hand disarms it. The callback receives the identity that was on
// the clock when the timer was armed, because Stop cannot cancel a callback
// that has already fired: the timeout handler must verify the seat is still
// the current actor before folding it.
type TurnWatchdog struct {
	clock     quartz.Clock
	timeout   time.Duration
	logger    *log.Logger
	onTimeout func(lobbyID, playerID string)

	mu     sync.Mutex
	timers map[string]*quartz.Timer
}

// NewTurnWatchdog creates a watchdog. A zero timeout disables it entirely:
// Arm becomes a no-op and players may take as long as they like.
func NewTurnWatchdog(clock quartz.Clock, timeout time.Duration, logger *log.Logger, onTimeout func(lobbyID, playerID string)) *TurnWatchdog {
	return &TurnWatchdog{
		clock:     clock,
		timeout:   timeout,
		logger:    logger.WithPrefix("watchdog"),
		onTimeout: onTimeout,
		timers:    make(map[string]*quartz.Timer),
	}
}

// Arm starts (or restarts) the turn timer for a lobby, watching playerID
func (w *TurnWatchdog) Arm(lobbyID, playerID string) {
	if w.timeout <= 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[lobbyID]; ok {
		timer.Stop()
	}
	w.timers[lobbyID] = w.clock.AfterFunc(w.timeout, func() {
		w.mu.Lock()
		delete(w.timers, lobbyID)
		w.mu.Unlock()

		w.logger.Info("turn timeout", "lobby", lobbyID, "player", playerID)
		w.onTimeout(lobbyID, playerID)
	})
}

// Disarm cancels the turn timer for a lobby, if armed
func (w *TurnWatchdog) Disarm(lobbyID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[lobbyID]; ok {
		timer.Stop()
		delete(w.timers, lobbyID)
	}
}

// Stop disarms every timer
func (w *TurnWatchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for id, timer := range w.timers {
		timer.Stop()
		delete(w.timers, id)
	}
}
