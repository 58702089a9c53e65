package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-core/internal/entity"
)

var errBadRequest = errors.New("bad request")

type gameUseCase interface {
	CreateGame(ctx context.Context, setup entity.Setup) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)

	MakeTurn(ctx context.Context, gameID string, move entity.Move) (*entity.Game, error)
	RestartGame(ctx context.Context, gameID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, gameID string) error
}

type GameHandlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)
	RestartGame(w http.ResponseWriter, r *http.Request)
	LeaveGame(w http.ResponseWriter, r *http.Request)
}

type playerRequest struct {
	Name string `json:"name"`
	Mark string `json:"mark"`
}

type createGameRequest struct {
	Type       string          `json:"type"`
	Difficulty string          `json:"difficulty"`
	BotFirst   bool            `json:"bot_first"`
	Players    []playerRequest `json:"players"`
}

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandlers struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
}

func NewGameHandlers(logger *slog.Logger, gameUseCase gameUseCase) GameHandlers {
	return &gameHandlers{
		logger:      logger.With("component", "rest"),
		gameUseCase: gameUseCase,
	}
}

func (that *gameHandlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeJSON(r, &req); err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	setup, err := req.toSetup()
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	game, err := that.gameUseCase.CreateGame(r.Context(), setup)
	if err != nil {
		that.writeError(w, "CreateGame", err)
		return
	}

	writeJSON(w, http.StatusCreated, game)
}

func (that *gameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, "MakeTurn", fmt.Errorf("%w: row and col are required", errBadRequest))
		return
	}

	move := entity.Move{Row: *req.Row, Col: *req.Col}

	game, err := that.gameUseCase.MakeTurn(r.Context(), chi.URLParam(r, "id"), move)
	if err != nil {
		that.writeError(w, "MakeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) RestartGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gameUseCase.RestartGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "RestartGame", err)
		return
	}

	writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) LeaveGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gameUseCase.LeaveGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "LeaveGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that createGameRequest) toSetup() (entity.Setup, error) {
	setup := entity.Setup{
		Type:     that.Type,
		BotFirst: that.BotFirst,
	}

	if that.Type == entity.WithBotType {
		difficulty, err := entity.ParseDifficulty(that.Difficulty)
		if err != nil {
			return entity.Setup{}, fmt.Errorf("%w: %w", errBadRequest, err)
		}

		setup.Difficulty = difficulty
	}

	for _, player := range that.Players {
		setup.Players = append(setup.Players, entity.NewHumanPlayer(player.Name, entity.Mark(player.Mark)))
	}

	return setup, nil
}

// StatusCode - maps domain errors onto HTTP statuses.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidSetup),
		errors.Is(err, entity.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrBotIsThinking),
		errors.Is(err, apperror.ErrGameFinished):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (that *gameHandlers) writeError(w http.ResponseWriter, method string, err error) {
	status := StatusCode(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		message = http.StatusText(status)
	} else {
		that.logger.Debug("request rejected", "method", method, "status", status, "error", err)
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid json: %w", errBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(v)
}
