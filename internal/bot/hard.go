package bot

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// Hard searches the full game tree with minimax and never loses.
type Hard struct{}

func NewHard() *Hard {
	return &Hard{}
}

// NextMove returns the first cell in row-major order with the best minimax score.
func (that *Hard) NextMove(board entity.Board, bot, opponent entity.Mark) (entity.Move, bool) {
	var (
		best      entity.Move
		found     bool
		bestScore = math.MinInt
	)

	for _, move := range entity.EmptyCells(board) {
		score := withMark(&board, move, bot, func() int {
			return minimax(&board, bot, opponent, false)
		})

		// strict comparison keeps the earliest of equally good cells
		if score > bestScore {
			bestScore = score
			best = move
			found = true
		}
	}

	return best, found
}

// minimax scores the position from the bot's point of view. maximizing is true on the bot's ply.
func minimax(board *entity.Board, bot, opponent entity.Mark, maximizing bool) int {
	if winner, ok := entity.DetectWinner(*board); ok {
		if winner == bot {
			return scoreWin
		}

		return scoreLoss
	}

	if entity.IsDraw(*board) {
		return scoreDraw
	}

	mark, best, pick := opponent, math.MaxInt, minInt
	if maximizing {
		mark, best, pick = bot, math.MinInt, maxInt
	}

	for _, move := range entity.EmptyCells(*board) {
		score := withMark(board, move, mark, func() int {
			return minimax(board, bot, opponent, !maximizing)
		})

		best = pick(best, score)
	}

	return best
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
