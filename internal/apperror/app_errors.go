package apperror

import "errors"

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrGameNotFound  = errors.New("game not found")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrBotIsThinking = errors.New("bot is thinking")
	ErrInvalidSetup  = errors.New("invalid game setup")
)
