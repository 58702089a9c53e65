package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// MakeTurn applies a move for mark and advances the game. The game is left untouched on any error.
func MakeTurn(gameInstance *entity.Game, mark entity.Mark, move entity.Move) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, mark, move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	board, accepted, err := entity.ApplyMove(gameInstance.Board, move.Row, move.Col, mark)
	if err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if !accepted {
		return fmt.Errorf("invalid turn: %w", apperror.ErrCellOccupied)
	}

	gameInstance.Board = board
	updateGameStatus(gameInstance)

	return nil
}

// validateMove - checks the parts of a move the board engine does not know about.
func validateMove(gameInstance *entity.Game, mark entity.Mark, move entity.Move) error {
	if !move.Valid() {
		return fmt.Errorf("%w: %s", entity.ErrOutOfRange, move)
	}

	if gameInstance.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game) {
	gameInstance.UpdateGameState()

	if gameInstance.IsOngoing() {
		gameInstance.ToggleTurn()
	}
}
