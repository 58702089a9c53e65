package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-core/internal/bot"
	"github.com/rocketscienceinc/tictactoe-core/internal/config"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository"
	"github.com/rocketscienceinc/tictactoe-core/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-core/internal/service"
	"github.com/rocketscienceinc/tictactoe-core/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-core/transport/rest"
	"github.com/rocketscienceinc/tictactoe-core/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closeStorage, err := newGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}
	}()

	gameService := service.NewGameService(gameRepo)
	botService := service.NewBotService(bot.NewRandom(conf.Bot.Seed))
	gamePlayService := service.NewGamePlayService(logger, gameService, botService, conf.Bot.ThinkDelay, conf.Bot.MoveTimeout)
	defer gamePlayService.Shutdown()

	gameUseCase := usecase.NewGameUseCase(logger, gamePlayService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameUseCase)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// newGameRepository - picks the session store configured for this instance.
func newGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	if conf.Storage == config.MemoryStorage {
		return repository.NewMemoryGameRepository(conf.Redis.GameTTL), func() error { return nil }, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return repository.NewGameRepository(redisStorage.Connection, conf.Redis.GameTTL), redisStorage.Close, nil
}
