package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

type memoryRecord struct {
	data      []byte
	expiresAt time.Time
}

// memoryGame keeps sessions in process. Games are stored as JSON so callers never share a pointer with the store.
// Expired games are dropped when read, and abandoned ones by a sweep that runs on writes at most once per ttl.
type memoryGame struct {
	mu        sync.RWMutex
	games     map[string]memoryRecord
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return &memoryGame{
		games: make(map[string]memoryRecord),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	record := memoryRecord{data: gameJSON}
	if that.ttl > 0 {
		record.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = record
	that.sweepLocked()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	record, ok := that.games[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	if that.expired(record) {
		that.dropExpired(id)
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	var existingGame entity.Game
	if err := json.Unmarshal(record.data, &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.games[id]
	delete(that.games, id)

	if !ok || that.expired(record) {
		return fmt.Errorf("%w: %s", apperror.ErrGameNotFound, id)
	}

	return nil
}

func (that *memoryGame) expired(record memoryRecord) bool {
	return !record.expiresAt.IsZero() && !that.now().Before(record.expiresAt)
}

// dropExpired removes the game unless it was rewritten after the caller saw it expired.
func (that *memoryGame) dropExpired(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if record, ok := that.games[id]; ok && that.expired(record) {
		delete(that.games, id)
	}
}

// sweepLocked must be called with mu held.
func (that *memoryGame) sweepLocked() {
	if that.ttl <= 0 {
		return
	}

	now := that.now()
	if now.Sub(that.lastSweep) < that.ttl {
		return
	}

	that.lastSweep = now

	for id, record := range that.games {
		if that.expired(record) {
			delete(that.games, id)
		}
	}
}
