package bot

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.Mark("X")
	o = entity.Mark("O")
	e = entity.Empty
)

// fixedRandom always picks the same index, wrapped into range.
type fixedRandom int

func (that fixedRandom) Intn(n int) int {
	return int(that) % n
}

var fullBoard = entity.Board{
	{x, o, x},
	{o, x, o},
	{o, x, o},
}

func TestNewStrategy(t *testing.T) {
	t.Run("Maps every difficulty to its strategy", func(t *testing.T) {
		easy, err := NewStrategy(entity.EasyDifficulty, fixedRandom(0))
		require.NoError(t, err)
		assert.IsType(t, &Easy{}, easy)

		medium, err := NewStrategy(entity.MediumDifficulty, fixedRandom(0))
		require.NoError(t, err)
		assert.IsType(t, &Medium{}, medium)

		hard, err := NewStrategy(entity.HardDifficulty, nil)
		require.NoError(t, err)
		assert.IsType(t, &Hard{}, hard)
	})

	t.Run("Unknown difficulty", func(t *testing.T) {
		_, _, err := ComputeMove(entity.NewBoard(), o, x, "impossible", fixedRandom(0))

		require.ErrorIs(t, err, entity.ErrUnknownDifficulty)
	})
}

func TestNoMoveOnFullBoard(t *testing.T) {
	for _, difficulty := range []entity.Difficulty{entity.EasyDifficulty, entity.MediumDifficulty, entity.HardDifficulty} {
		t.Run(string(difficulty), func(t *testing.T) {
			// When: asking for a move on a board without empty cells
			_, ok, err := ComputeMove(fullBoard, o, x, difficulty, fixedRandom(3))

			// Then: there is no move and no error
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestEasy_NextMove(t *testing.T) {
	t.Run("Picks the empty cell chosen by the random source", func(t *testing.T) {
		// Given: a board with empty cells (0,1), (1,0), (2,2)
		board := entity.Board{
			{x, e, o},
			{e, x, o},
			{o, x, e},
		}

		// When: the random source picks index 1
		move, ok := NewEasy(fixedRandom(1)).NextMove(board, o, x)

		// Then: the second empty cell in row-major order is played
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 1, Col: 0}, move)
	})

	t.Run("Only ever returns empty cells", func(t *testing.T) {
		board := entity.Board{
			{x, e, o},
			{e, x, o},
			{o, x, e},
		}

		for i := 0; i < 10; i++ {
			move, ok := NewEasy(NewRandom(int64(i + 1))).NextMove(board, o, x)

			require.True(t, ok)
			assert.Equal(t, entity.Empty, board[move.Row][move.Col])
		}
	})
}

func TestMedium_NextMove(t *testing.T) {
	t.Run("Completes every winning line", func(t *testing.T) {
		for _, line := range entity.WinLines {
			for gap := range line {
				// Given: a line where the bot owns two cells and the third is empty
				board := entity.NewBoard()
				for i, cell := range line {
					if i != gap {
						board[cell.Row][cell.Col] = o
					}
				}

				// When: the medium bot moves
				move, ok := NewMedium(fixedRandom(0)).NextMove(board, o, x)

				// Then: it takes the gap
				require.True(t, ok)
				winning, _, err := entity.ApplyMove(board, move.Row, move.Col, o)
				require.NoError(t, err)

				winner, won := entity.DetectWinner(winning)
				assert.True(t, won, "line %v gap %d", line, gap)
				assert.Equal(t, o, winner)
			}
		}
	})

	t.Run("Blocks the opponent's threat", func(t *testing.T) {
		// Given: X threatens the top row and O has no immediate win
		board := entity.Board{
			{x, x, e},
			{o, e, e},
			{e, e, e},
		}

		// When: the medium bot plays O
		move, ok := NewMedium(fixedRandom(0)).NextMove(board, o, x)

		// Then: it blocks at (0,2)
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Prefers its own win over a block", func(t *testing.T) {
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		move, ok := NewMedium(fixedRandom(0)).NextMove(board, o, x)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
	})

	t.Run("Falls back to a random cell", func(t *testing.T) {
		// Given: no threats on the board
		board := entity.Board{
			{x, e, e},
			{e, e, e},
			{e, e, e},
		}

		// When: the random source picks index 2
		move, ok := NewMedium(fixedRandom(2)).NextMove(board, o, x)

		// Then: the third empty cell is played
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 1, Col: 0}, move)
	})

	t.Run("Leaves the caller's board untouched", func(t *testing.T) {
		board := entity.Board{
			{x, x, e},
			{o, e, e},
			{e, e, e},
		}
		snapshot := board

		_, _ = NewMedium(fixedRandom(0)).NextMove(board, o, x)

		assert.Equal(t, snapshot, board)
	})
}

func TestHard_NextMove(t *testing.T) {
	t.Run("Answers a centre opening with the first corner", func(t *testing.T) {
		// Given: X opened in the centre
		board := entity.Board{
			{e, e, e},
			{e, x, e},
			{e, e, e},
		}

		// When: the hard bot replies as O
		move, ok := NewHard().NextMove(board, o, x)

		// Then: it takes (0,0)
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 0}, move)
	})

	t.Run("Blocks the top row", func(t *testing.T) {
		// Given: X threatens (0,2); taking it also sets up O's anti-diagonal
		board := entity.Board{
			{x, x, e},
			{o, o, e},
			{e, e, e},
		}

		// When: the hard bot plays O
		move, ok := NewHard().NextMove(board, o, x)

		// Then: (0,2) is the first cell with a forced win
		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		board := entity.Board{
			{o, x, x},
			{e, o, x},
			{e, e, e},
		}

		move, ok := NewHard().NextMove(board, o, x)

		require.True(t, ok)
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
	})

	t.Run("Hard against hard is always a draw", func(t *testing.T) {
		board := entity.NewBoard()
		hard := NewHard()
		toMove, other := x, o

		for !entity.IsTerminal(board) {
			move, ok := hard.NextMove(board, toMove, other)
			require.True(t, ok)

			var accepted bool
			var err error
			board, accepted, err = entity.ApplyMove(board, move.Row, move.Col, toMove)
			require.NoError(t, err)
			require.True(t, accepted)

			toMove, other = other, toMove
		}

		assert.True(t, entity.IsDraw(board))
	})
}

// TestHard_NeverLoses plays the hard bot against every possible opponent line, moving first and second.
func TestHard_NeverLoses(t *testing.T) {
	for _, botFirst := range []bool{true, false} {
		name := "bot moves second"
		if botFirst {
			name = "bot moves first"
		}

		t.Run(name, func(t *testing.T) {
			toMove := x
			if botFirst {
				toMove = o
			}

			var results gameResults
			exploreAgainstHard(t, NewHard(), entity.NewBoard(), toMove, &results)

			assert.Zero(t, results.losses)
			assert.Positive(t, results.wins)
			assert.Positive(t, results.draws)
		})
	}
}

type gameResults struct {
	wins, draws, losses int
}

// exploreAgainstHard lets the hard bot (O) answer every legal X move until the game ends.
func exploreAgainstHard(t *testing.T, hard *Hard, board entity.Board, toMove entity.Mark, results *gameResults) {
	t.Helper()

	switch outcome := entity.Evaluate(board); outcome.State {
	case entity.Won:
		if outcome.Winner == o {
			results.wins++
		} else {
			results.losses++
		}
		return
	case entity.Draw:
		results.draws++
		return
	case entity.InProgress:
	}

	if toMove == o {
		move, ok := hard.NextMove(board, o, x)
		require.True(t, ok)

		next, accepted, err := entity.ApplyMove(board, move.Row, move.Col, o)
		require.NoError(t, err)
		require.True(t, accepted)

		exploreAgainstHard(t, hard, next, x, results)
		return
	}

	for _, move := range entity.EmptyCells(board) {
		next, _, err := entity.ApplyMove(board, move.Row, move.Col, x)
		require.NoError(t, err)

		exploreAgainstHard(t, hard, next, o, results)
	}
}

func TestWithMark_AlwaysUndoes(t *testing.T) {
	board := entity.NewBoard()
	move := entity.Move{Row: 2, Col: 1}

	// When: the scoped function panics
	assert.Panics(t, func() {
		withMark(&board, move, x, func() int {
			panic("boom")
		})
	})

	// Then: the placement has still been cleared
	assert.Equal(t, entity.NewBoard(), board)
}
