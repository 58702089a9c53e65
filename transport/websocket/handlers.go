package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

// serveGame - upgrades the request and streams one game to the client.
func (that *Server) serveGame(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	log := that.logger.With("method", "serveGame", "gameID", gameID)

	if gameID == "" {
		http.Error(w, "game_id is required", http.StatusBadRequest)
		return
	}

	// subscribe before the read below so no update between the read and the stream is lost
	updates, unsubscribe := that.gameUseCase.Subscribe(gameID)
	defer unsubscribe()

	game, err := that.gameUseCase.GetGame(r.Context(), gameID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	wsConn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer wsConn.Close()

	conn := &connection{conn: wsConn, gameID: gameID}

	log.Info("WebSocket connection established")

	if err = conn.send(actionGameUpdate, Payload{Game: game}); err != nil {
		log.Error("failed to send game state", "error", err)
		return
	}

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go that.pushUpdates(connCtx, conn, updates)

	if err = that.handleMessages(connCtx, conn); err != nil {
		log.Debug("connection closed", "error", err)
	}
}

// pushUpdates - forwards every game update to the client until the game is left or the connection ends.
func (that *Server) pushUpdates(ctx context.Context, conn *connection, updates <-chan *entity.Game) {
	log := that.logger.With("method", "pushUpdates", "gameID", conn.gameID)

	for {
		select {
		case <-ctx.Done():
			return
		case game, ok := <-updates:
			if !ok {
				conn.closeNormally("game left")
				return
			}

			if err := conn.send(actionGameUpdate, Payload{Game: game}); err != nil {
				log.Error("failed to send game update", "error", err)
				return
			}
		}
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "gameID", conn.gameID)

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)
			_ = conn.sendError("", "invalid message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)
			_ = conn.sendError(message.Action, "unknown action")
			continue
		}

		if err = handler(ctx, conn, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	var payload turnPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Row == nil || payload.Col == nil {
		return conn.sendError(msg.Action, "row and col are required")
	}

	// the resulting state reaches the client through the update stream
	_, err := that.gameUseCase.MakeTurn(ctx, conn.gameID, entity.Move{Row: *payload.Row, Col: *payload.Col})
	if err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return nil
}

func (that *Server) handleGameRestart(ctx context.Context, conn *connection, msg *Message) error {
	if _, err := that.gameUseCase.RestartGame(ctx, conn.gameID); err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, conn *connection, msg *Message) error {
	if err := that.gameUseCase.LeaveGame(ctx, conn.gameID); err != nil {
		return that.replyError(conn, msg.Action, err)
	}

	return nil
}

// replyError - rule violations go back to the client; anything else is reported to the caller as well.
func (that *Server) replyError(conn *connection, action string, err error) error {
	if sendErr := conn.sendError(action, err.Error()); sendErr != nil {
		return fmt.Errorf("failed to send error response: %w", sendErr)
	}

	if isRuleViolation(err) {
		return nil
	}

	return err
}

func isRuleViolation(err error) bool {
	for _, target := range []error{
		apperror.ErrGameFinished,
		apperror.ErrNotYourTurn,
		apperror.ErrCellOccupied,
		apperror.ErrBotIsThinking,
		apperror.ErrGameNotFound,
		entity.ErrOutOfRange,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
