package entity

import (
	"errors"
	"fmt"
)

// BoardSize is the side length of the board.
const BoardSize = 3

// Empty marks a free cell.
const Empty Mark = ""

var (
	ErrOutOfRange = errors.New("cell coordinates out of range")
	ErrEmptyMark  = errors.New("mark must not be empty")

	// WinLines are checked in this order: rows, columns, main diagonal, anti-diagonal.
	WinLines = [8][3]Move{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}
)

// Mark is a player symbol. Marks are opaque and only compared for equality.
type Mark string

// Board is a row-major 3x3 grid. It is a value: assigning or passing it copies the cells.
type Board [BoardSize][BoardSize]Mark

// Move names one cell of the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

type OutcomeState string

const (
	InProgress OutcomeState = "in_progress"
	Won        OutcomeState = "won"
	Draw       OutcomeState = "draw"
)

// Outcome is the result of evaluating a board. Winner is set only when State is Won.
type Outcome struct {
	State  OutcomeState `json:"state"`
	Winner Mark         `json:"winner,omitempty"`
}

func NewBoard() Board {
	return Board{}
}

// ApplyMove places mark at (row, col) and returns the resulting board.
// An occupied target is not an error: the board comes back unchanged with accepted=false.
// It does not know whose turn it is or whether the game is already over.
func ApplyMove(board Board, row, col int, mark Mark) (Board, bool, error) {
	move := Move{Row: row, Col: col}
	if !move.Valid() {
		return board, false, fmt.Errorf("%w: %s", ErrOutOfRange, move)
	}

	if mark == Empty {
		return board, false, ErrEmptyMark
	}

	if board[row][col] != Empty {
		return board, false, nil
	}

	board[row][col] = mark

	return board, true, nil
}

// DetectWinner returns the mark of the first completed line in WinLines order.
func DetectWinner(board Board) (Mark, bool) {
	for _, line := range WinLines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]

		if a != Empty && a == b && b == c {
			return a, true
		}
	}

	return Empty, false
}

func IsFull(board Board) bool {
	for _, row := range board {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// IsDraw reports a full board without a winner. A full board with a completed line is a win.
func IsDraw(board Board) bool {
	if !IsFull(board) {
		return false
	}

	_, won := DetectWinner(board)

	return !won
}

func IsTerminal(board Board) bool {
	if _, won := DetectWinner(board); won {
		return true
	}

	return IsDraw(board)
}

func Evaluate(board Board) Outcome {
	if winner, won := DetectWinner(board); won {
		return Outcome{State: Won, Winner: winner}
	}

	if IsDraw(board) {
		return Outcome{State: Draw}
	}

	return Outcome{State: InProgress}
}

// EmptyCells lists the free cells in row-major order.
func EmptyCells(board Board) []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)
	for r, row := range board {
		for c, cell := range row {
			if cell == Empty {
				cells = append(cells, Move{Row: r, Col: c})
			}
		}
	}

	return cells
}
