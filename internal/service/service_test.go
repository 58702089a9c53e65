package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
)

const (
	human entity.Mark = "🐱"
	rival entity.Mark = "🐶"
)

// firstCell makes the random strategies deterministic.
type firstCell struct{}

func (firstCell) Intn(int) int {
	return 0
}

type recordedUpdates struct {
	mu    sync.Mutex
	games []*entity.Game
}

func (that *recordedUpdates) listen(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games = append(that.games, game)
}

func (that *recordedUpdates) count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.games)
}

func (that *recordedUpdates) at(i int) *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.games[i]
}

func (that *recordedUpdates) last() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.games) == 0 {
		return nil
	}

	return that.games[len(that.games)-1]
}

func newTestGamePlay(t *testing.T, botDelay time.Duration) (*gamePlayService, *recordedUpdates) {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gameService := NewGameService(repository.NewMemoryGameRepository(0))
	gamePlay := NewGamePlayService(logger, gameService, NewBotService(firstCell{}), botDelay, time.Second).(*gamePlayService)

	updates := &recordedUpdates{}
	gamePlay.OnUpdate(updates.listen)

	t.Cleanup(gamePlay.Shutdown)

	return gamePlay, updates
}

func pvpSetup() entity.Setup {
	return entity.Setup{
		Type:    entity.PvPType,
		Players: []*entity.Player{{Name: "Ann", Mark: human}, {Name: "Bob", Mark: rival}},
	}
}

func botSetup(difficulty entity.Difficulty, botFirst bool) entity.Setup {
	return entity.Setup{
		Type:       entity.WithBotType,
		Difficulty: difficulty,
		BotFirst:   botFirst,
		Players:    []*entity.Player{{Name: "You", Mark: human}, {Mark: rival}},
	}
}

func countMarks(board entity.Board, mark entity.Mark) int {
	count := 0
	for _, row := range board {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}
