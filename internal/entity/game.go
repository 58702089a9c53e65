package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-core/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	PvPType     = "pvp"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Setup is what the presentation layer chooses before play begins.
type Setup struct {
	Type       string     `json:"type"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	BotFirst   bool       `json:"bot_first,omitempty"`
	Players    []*Player  `json:"players"`
}

// Game is one play session. Players are stored in move order: Players[0] moves first in every round.
type Game struct {
	ID          string     `json:"id"`
	Board       Board      `json:"board"`
	Turn        Mark       `json:"player_turn"`
	Winner      Mark       `json:"winner,omitempty"`
	Draw        bool       `json:"draw"`
	Status      string     `json:"status"`
	Type        string     `json:"type"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	Players     []*Player  `json:"players"`
	BotThinking bool       `json:"bot_thinking"`
	Round       int        `json:"round"`
}

func NewGame(id string, setup Setup) (*Game, error) {
	players, err := setup.players()
	if err != nil {
		return nil, err
	}

	game := &Game{
		ID:      id,
		Type:    setup.Type,
		Players: players,
	}

	if setup.Type == WithBotType {
		game.Difficulty = setup.Difficulty
	}

	game.Reset()

	return game, nil
}

func (that Setup) players() ([]*Player, error) {
	for i, player := range that.Players {
		if player == nil {
			return nil, fmt.Errorf("%w: player %d is missing", apperror.ErrInvalidSetup, i)
		}
	}

	switch that.Type {
	case PvPType:
		if len(that.Players) != 2 {
			return nil, fmt.Errorf("%w: pvp game needs 2 players, got %d", apperror.ErrInvalidSetup, len(that.Players))
		}

		first, second := *that.Players[0], *that.Players[1]
		first.Kind, second.Kind = HumanKind, HumanKind

		if err := validateMarks(first.Mark, second.Mark); err != nil {
			return nil, err
		}

		return []*Player{&first, &second}, nil
	case WithBotType:
		if len(that.Players) == 0 || len(that.Players) > 2 {
			return nil, fmt.Errorf("%w: bot game needs 1 human player, got %d", apperror.ErrInvalidSetup, len(that.Players))
		}

		if !that.Difficulty.Valid() {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidSetup, ErrUnknownDifficulty)
		}

		human := *that.Players[0]
		human.Kind = HumanKind

		botMark := pickBotMark(human.Mark)
		if len(that.Players) == 2 && that.Players[1].Mark != Empty {
			botMark = that.Players[1].Mark
		}

		if err := validateMarks(human.Mark, botMark); err != nil {
			return nil, err
		}

		bot := NewBotPlayer(botMark)
		if that.BotFirst {
			return []*Player{bot, &human}, nil
		}

		return []*Player{&human, bot}, nil
	default:
		return nil, fmt.Errorf("%w: unknown game type %q", apperror.ErrInvalidSetup, that.Type)
	}
}

// validateMarks keeps the board invariant: every mark is non-empty and belongs to exactly one player.
func validateMarks(first, second Mark) error {
	if first == Empty || second == Empty {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidSetup, ErrEmptyMark)
	}

	if first == second {
		return fmt.Errorf("%w: players share mark %q", apperror.ErrInvalidSetup, first)
	}

	return nil
}

// Reset clears the board for a new round. Any bot move scheduled for the previous round becomes stale.
func (that *Game) Reset() {
	that.Board = NewBoard()
	that.Winner = Empty
	that.Draw = false
	that.Status = StatusOngoing
	that.BotThinking = false
	that.Round++

	if len(that.Players) > 0 {
		that.Turn = that.Players[0].Mark
	}
}

func (that *Game) UpdateGameState() {
	switch outcome := Evaluate(that.Board); outcome.State {
	case Won:
		that.Winner = outcome.Winner
		that.Status = StatusFinished
		that.Turn = Empty
	case Draw:
		that.Draw = true
		that.Status = StatusFinished
		that.Turn = Empty
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) Outcome() Outcome {
	return Evaluate(that.Board)
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) PlayerByMark(mark Mark) *Player {
	for _, player := range that.Players {
		if player.Mark == mark {
			return player
		}
	}

	return nil
}

func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// Opponent returns the mark of the other player.
func (that *Game) Opponent(mark Mark) Mark {
	for _, player := range that.Players {
		if player.Mark != mark {
			return player.Mark
		}
	}

	return Empty
}

func (that *Game) IsBotTurn() bool {
	bot := that.BotPlayer()

	return bot != nil && that.IsOngoing() && that.Turn == bot.Mark
}

func (that *Game) ToggleTurn() {
	that.Turn = that.Opponent(that.Turn)
}
