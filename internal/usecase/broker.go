package usecase

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const subscriberBuffer = 8

type subscriber struct {
	updates chan *entity.Game
	once    sync.Once
}

func (that *subscriber) close() {
	that.once.Do(func() {
		close(that.updates)
	})
}

// updateBroker fans game updates out to subscribers. A subscriber that falls behind misses updates instead of blocking the game.
type updateBroker struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[*subscriber]struct{}
}

func newUpdateBroker(logger *slog.Logger) *updateBroker {
	return &updateBroker{
		logger:      logger.With("component", "broker"),
		subscribers: make(map[string]map[*subscriber]struct{}),
	}
}

func (that *updateBroker) subscribe(gameID string) (<-chan *entity.Game, func()) {
	sub := &subscriber{updates: make(chan *entity.Game, subscriberBuffer)}

	that.mu.Lock()
	if that.subscribers[gameID] == nil {
		that.subscribers[gameID] = make(map[*subscriber]struct{})
	}
	that.subscribers[gameID][sub] = struct{}{}
	that.mu.Unlock()

	cancel := func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if subs, ok := that.subscribers[gameID]; ok {
			delete(subs, sub)
			if len(subs) == 0 {
				delete(that.subscribers, gameID)
			}
		}

		sub.close()
	}

	return sub.updates, cancel
}

func (that *updateBroker) publish(game *entity.Game) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for sub := range that.subscribers[game.ID] {
		select {
		case sub.updates <- game:
		default:
			that.logger.Warn("subscriber is too slow, update dropped", "gameID", game.ID)
		}
	}
}

func (that *updateBroker) closeGame(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for sub := range that.subscribers[gameID] {
		sub.close()
	}

	delete(that.subscribers, gameID)
}
