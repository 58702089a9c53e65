package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/pkg"
)

type GameService interface {
	CreateGame(ctx context.Context, setup entity.Setup) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error

	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

func (that *gameService) CreateGame(ctx context.Context, setup entity.Setup) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game, err := entity.NewGame(gameID, setup)
	if err != nil {
		return nil, fmt.Errorf("failed to set up game: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game in storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
