package bot

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// Strategy picks the bot's next move. ok is false when the board has no empty cell.
type Strategy interface {
	NextMove(board entity.Board, bot, opponent entity.Mark) (move entity.Move, ok bool)
}

// NewStrategy returns the strategy for a difficulty tier.
func NewStrategy(difficulty entity.Difficulty, rnd Random) (Strategy, error) {
	switch difficulty {
	case entity.EasyDifficulty:
		return NewEasy(rnd), nil
	case entity.MediumDifficulty:
		return NewMedium(rnd), nil
	case entity.HardDifficulty:
		return NewHard(), nil
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownDifficulty, difficulty)
	}
}

// ComputeMove selects the strategy for difficulty and asks it for a move.
func ComputeMove(board entity.Board, bot, opponent entity.Mark, difficulty entity.Difficulty, rnd Random) (entity.Move, bool, error) {
	strategy, err := NewStrategy(difficulty, rnd)
	if err != nil {
		return entity.Move{}, false, err
	}

	move, ok := strategy.NextMove(board, bot, opponent)

	return move, ok, nil
}
