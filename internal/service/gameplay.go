package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
	"github.com/rocketscienceinc/tictactoe-core/internal/tictactoe"
)

// UpdateListener receives a copy of the game after every state change.
// Listeners are called in state order under the service lock; they must not block or call back into the service.
type UpdateListener func(game *entity.Game)

type GamePlayService interface {
	StartGame(ctx context.Context, setup entity.Setup) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
	RestartGame(ctx context.Context, gameID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, gameID string) error

	OnUpdate(listener UpdateListener)
	Shutdown()
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService

	// mu serialises every load-modify-save sequence, including the ones run from bot timers.
	mu          sync.Mutex
	scheduler   *botScheduler
	moveTimeout time.Duration

	listenersMu sync.RWMutex
	listeners   []UpdateListener
}

func NewGamePlayService(
	logger *slog.Logger,
	gameService GameService,
	botService BotService,
	botDelay, moveTimeout time.Duration,
) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
		scheduler:   newBotScheduler(botDelay),
		moveTimeout: moveTimeout,
	}
}

func (that *gamePlayService) StartGame(ctx context.Context, setup entity.Setup) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.CreateGame(ctx, setup)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.save(ctx, game); err != nil {
			return nil, err
		}
	}

	that.logger.Info("game started", "gameID", game.ID, "type", game.Type, "difficulty", game.Difficulty)

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// MakeTurn plays a human move for whoever is to move. In bot games the bot answers after the think delay.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.makeTurn(ctx, gameID, move)
	if err != nil {
		return nil, err
	}

	that.logger.Debug("turn made", "gameID", gameID, "move", move.String(), "status", game.Status)
	that.notify(game)

	return game, nil
}

// makeTurn must be called with mu held.
func (that *gamePlayService) makeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.BotThinking {
		return nil, apperror.ErrBotIsThinking
	}

	if game.IsBotTurn() {
		return nil, apperror.ErrNotYourTurn
	}

	if err = tictactoe.MakeTurn(game, game.Turn, move); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.save(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// RestartGame clears the board for a new round. A bot move pending from the previous round is dropped.
func (that *gamePlayService) RestartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.restartGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	that.logger.Info("game restarted", "gameID", gameID, "round", game.Round)
	that.notify(game)

	return game, nil
}

// restartGame must be called with mu held.
func (that *gamePlayService) restartGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	that.scheduler.Cancel(gameID)
	game.Reset()

	if err = that.save(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gamePlayService) LeaveGame(ctx context.Context, gameID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.scheduler.Cancel(gameID)

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to leave game: %w", err)
	}

	that.logger.Info("game left", "gameID", gameID)

	return nil
}

func (that *gamePlayService) OnUpdate(listener UpdateListener) {
	that.listenersMu.Lock()
	defer that.listenersMu.Unlock()

	that.listeners = append(that.listeners, listener)
}

func (that *gamePlayService) Shutdown() {
	that.scheduler.StopAll()
}

// save persists the game. When the bot is to move it is marked as thinking and its move is scheduled.
// Must be called with mu held.
func (that *gamePlayService) save(ctx context.Context, game *entity.Game) error {
	if game.IsBotTurn() {
		game.BotThinking = true
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if game.BotThinking {
		gameID, round := game.ID, game.Round
		that.scheduler.Schedule(gameID, func() {
			that.playBotTurn(gameID, round)
		})

		that.logger.Debug("bot move scheduled", "gameID", gameID, "round", round)
	}

	return nil
}

// playBotTurn runs when the think delay is over.
func (that *gamePlayService) playBotTurn(gameID string, round int) {
	ctx, cancel := context.WithTimeout(context.Background(), that.moveTimeout)
	defer cancel()

	_, _ = that.applyBotTurn(ctx, gameID, round)
}

// applyBotTurn drops the move when the game has moved on since it was scheduled.
// A bot that cannot move ends the round so the session is not left waiting on it.
func (that *gamePlayService) applyBotTurn(ctx context.Context, gameID string, round int) (*entity.Game, bool) {
	log := that.logger.With("method", "applyBotTurn", "gameID", gameID, "round", round)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		log.Debug("bot move discarded, game is gone")
		return nil, false
	}

	if err != nil {
		log.Error("failed to load game for bot move", "error", err)
		return nil, false
	}

	if game.Round != round || !game.BotThinking || game.IsFinished() {
		log.Debug("bot move discarded", "currentRound", game.Round, "thinking", game.BotThinking, "status", game.Status)
		return nil, false
	}

	game.BotThinking = false

	moved, err := that.botService.MakeTurn(game)
	if err != nil || !moved {
		log.Warn("bot could not move, round ended", "error", err)
		game.Status = entity.StatusFinished
		game.Turn = entity.Empty
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		log.Error("failed to save bot move", "error", err)
		return nil, false
	}

	log.Debug("bot move applied", "moved", moved, "status", game.Status)
	that.notify(game)

	return game, true
}

// notify must be called with mu held so listeners see updates in the order they were saved.
func (that *gamePlayService) notify(game *entity.Game) {
	that.listenersMu.RLock()
	listeners := that.listeners
	that.listenersMu.RUnlock()

	for _, listener := range listeners {
		snapshot := *game
		listener(&snapshot)
	}
}
