package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
	RestartGame(ctx context.Context, gameID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, gameID string) error

	Subscribe(gameID string) (<-chan *entity.Game, func())
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, conn *connection, message *Message) error
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the presentation layer is served from its own origin
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]func(context.Context, *connection, *Message) error{
		actionGameTurn:    server.handleGameTurn,
		actionGameRestart: server.handleGameRestart,
		actionGameLeave:   server.handleGameLeave,
	}

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.serveGame(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
