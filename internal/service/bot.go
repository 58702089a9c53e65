package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/bot"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	// MakeTurn plays the bot's move in place. It reports false when the board has no empty cell.
	MakeTurn(game *entity.Game) (bool, error)
}

type botService struct {
	mu  sync.Mutex
	rnd bot.Random
}

func NewBotService(rnd bot.Random) BotService {
	return &botService{
		rnd: rnd,
	}
}

func (that *botService) MakeTurn(game *entity.Game) (bool, error) {
	if game.IsFinished() {
		return false, apperror.ErrGameFinished
	}

	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return false, ErrBotNotFound
	}

	opponent := game.Opponent(botPlayer.Mark)

	// the random source is shared between games and is not safe for concurrent use
	that.mu.Lock()
	move, ok, err := bot.ComputeMove(game.Board, botPlayer.Mark, opponent, game.Difficulty, that.rnd)
	that.mu.Unlock()

	if err != nil {
		return false, fmt.Errorf("failed to compute bot move: %w", err)
	}

	if !ok {
		return false, nil
	}

	if err = tictactoe.MakeTurn(game, botPlayer.Mark, move); err != nil {
		return false, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return true, nil
}
