package service

import (
	"sync"
	"time"
)

type pendingMove struct {
	timer *time.Timer
}

// botScheduler delays bot moves. At most one move is pending per game; scheduling again replaces it.
type botScheduler struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingMove
}

func newBotScheduler(delay time.Duration) *botScheduler {
	return &botScheduler{
		delay:   delay,
		pending: make(map[string]*pendingMove),
	}
}

func (that *botScheduler) Schedule(gameID string, fn func()) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelLocked(gameID)

	move := &pendingMove{}
	move.timer = time.AfterFunc(that.delay, func() {
		that.release(gameID, move)
		fn()
	})

	that.pending[gameID] = move
}

// Cancel stops the pending move of a game. A callback that already started is not interrupted.
func (that *botScheduler) Cancel(gameID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.cancelLocked(gameID)
}

func (that *botScheduler) Pending(gameID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.pending[gameID]

	return ok
}

func (that *botScheduler) StopAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for gameID := range that.pending {
		that.cancelLocked(gameID)
	}
}

func (that *botScheduler) cancelLocked(gameID string) bool {
	move, ok := that.pending[gameID]
	if !ok {
		return false
	}

	delete(that.pending, gameID)

	return move.timer.Stop()
}

// release forgets a fired move unless it has been replaced in the meantime.
func (that *botScheduler) release(gameID string, move *pendingMove) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.pending[gameID] == move {
		delete(that.pending, gameID)
	}
}
