package bot

import "github.com/rocketscienceinc/tictactoe-core/internal/entity"

// Easy plays a uniformly random empty cell.
type Easy struct {
	rnd Random
}

func NewEasy(rnd Random) *Easy {
	return &Easy{rnd: rnd}
}

func (that *Easy) NextMove(board entity.Board, _, _ entity.Mark) (entity.Move, bool) {
	return randomCell(board, that.rnd)
}

func randomCell(board entity.Board, rnd Random) (entity.Move, bool) {
	cells := entity.EmptyCells(board)
	if len(cells) == 0 {
		return entity.Move{}, false
	}

	return cells[rnd.Intn(len(cells))], true
}
