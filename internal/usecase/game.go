package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/service"
)

type GameUseCase interface {
	CreateGame(ctx context.Context, setup entity.Setup) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
	RestartGame(ctx context.Context, gameID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, gameID string) error

	// Subscribe streams every state change of a game until the returned cancel func is called
	// or the game is left.
	Subscribe(gameID string) (<-chan *entity.Game, func())
}

type gamePlayService interface {
	StartGame(ctx context.Context, setup entity.Setup) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
	RestartGame(ctx context.Context, gameID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, gameID string) error

	OnUpdate(listener service.UpdateListener)
}

type gameUseCase struct {
	logger *slog.Logger

	gamePlayService gamePlayService
	broker          *updateBroker
}

func NewGameUseCase(logger *slog.Logger, gamePlayService gamePlayService) GameUseCase {
	useCase := &gameUseCase{
		logger:          logger.With("component", "usecase"),
		gamePlayService: gamePlayService,
		broker:          newUpdateBroker(logger),
	}

	gamePlayService.OnUpdate(useCase.broker.publish)

	return useCase
}

func (that *gameUseCase) CreateGame(ctx context.Context, setup entity.Setup) (*entity.Game, error) {
	game, err := that.gamePlayService.StartGame(ctx, setup)
	if err != nil {
		return nil, fmt.Errorf("could not start game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gamePlayService.GetGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("could not get game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeTurn(ctx, gameID, move)
	if err != nil {
		return nil, fmt.Errorf("could not make turn: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) RestartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gamePlayService.RestartGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("could not restart game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) LeaveGame(ctx context.Context, gameID string) error {
	if err := that.gamePlayService.LeaveGame(ctx, gameID); err != nil {
		return fmt.Errorf("could not leave game: %w", err)
	}

	that.broker.closeGame(gameID)
	that.logger.Debug("subscribers released", "gameID", gameID)

	return nil
}

func (that *gameUseCase) Subscribe(gameID string) (<-chan *entity.Game, func()) {
	return that.broker.subscribe(gameID)
}
