package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty selects the bot strategy. It is fixed for the whole session.
type Difficulty string

const (
	EasyDifficulty   Difficulty = "easy"
	MediumDifficulty Difficulty = "medium"
	HardDifficulty   Difficulty = "hard"
)

func ParseDifficulty(value string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(value))); d {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

// Valid reports a canonical tier. Input from outside goes through ParseDifficulty first.
func (that Difficulty) Valid() bool {
	switch that {
	case EasyDifficulty, MediumDifficulty, HardDifficulty:
		return true
	default:
		return false
	}
}
