package bot

import "github.com/rocketscienceinc/tictactoe-core/internal/entity"

// Medium takes an immediate win, otherwise blocks the opponent's immediate win,
// otherwise falls back to a random cell.
type Medium struct {
	rnd Random
}

func NewMedium(rnd Random) *Medium {
	return &Medium{rnd: rnd}
}

func (that *Medium) NextMove(board entity.Board, bot, opponent entity.Mark) (entity.Move, bool) {
	if move, ok := completingMove(&board, bot); ok {
		return move, true
	}

	if move, ok := completingMove(&board, opponent); ok {
		return move, true
	}

	return randomCell(board, that.rnd)
}

// completingMove scans empty cells in row-major order for one that wins the game for mark.
func completingMove(board *entity.Board, mark entity.Mark) (entity.Move, bool) {
	for _, move := range entity.EmptyCells(*board) {
		wins := withMark(board, move, mark, func() bool {
			winner, ok := entity.DetectWinner(*board)
			return ok && winner == mark
		})

		if wins {
			return move, true
		}
	}

	return entity.Move{}, false
}

// withMark places mark on an empty cell for the duration of fn and always clears it afterwards.
func withMark[T any](board *entity.Board, move entity.Move, mark entity.Mark, fn func() T) T {
	board[move.Row][move.Col] = mark
	defer func() {
		board[move.Row][move.Col] = entity.Empty
	}()

	return fn()
}
