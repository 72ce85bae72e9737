package entity

import (
	"errors"
	"fmt"
)

type Difficulty string

const (
	LowDifficulty    Difficulty = "low"
	MediumDifficulty Difficulty = "medium"
	HighDifficulty   Difficulty = "high"
)

var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Settings - how the computer player takes part in a round.
type Settings struct {
	ComputerActive bool       `json:"computer_active"`
	Difficulty     Difficulty `json:"difficulty"`
	ComputerMark   Cell       `json:"computer_mark"`
}

func ParseDifficulty(level string) (Difficulty, error) {
	switch Difficulty(level) {
	case LowDifficulty, MediumDifficulty, HighDifficulty:
		return Difficulty(level), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, level)
	}
}

func (that *Settings) Validate() error {
	if _, err := ParseDifficulty(string(that.Difficulty)); err != nil {
		return err
	}

	if _, err := ParseMark(string(that.ComputerMark)); err != nil {
		return err
	}

	return nil
}

// HumanMark returns the mark left for the human when the computer plays.
func (that *Settings) HumanMark() Cell {
	return that.ComputerMark.Opponent()
}
