package bot

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const (
	SourceOwnLine    = "own line"
	SourceBlock      = "block opponent"
	SourcePositional = "positional"
	SourceRandom     = "random"
)

type board interface {
	Get(row, column int) entity.Cell
	IsFree(row, column int) bool
}

type gameState interface {
	board

	Turn() entity.Cell
	HasMovesRemaining() bool
	Place(row, column int) error
}

// Decision describes the move the computer made and the rule that chose it.
type Decision struct {
	Position entity.Position
	Source   string
	Rule     string
}

// HeuristicPlayer is the computer opponent. It never touches the board
// directly, every read and write goes through the game state.
type HeuristicPlayer struct {
	mark       entity.Cell
	active     bool
	difficulty entity.Difficulty

	random RandomSource
}

func NewHeuristicPlayer(random RandomSource) *HeuristicPlayer {
	if random == nil {
		random = NewRandomSource()
	}

	return &HeuristicPlayer{
		mark:       entity.PlayerO,
		active:     false,
		difficulty: entity.LowDifficulty,
		random:     random,
	}
}

func (that *HeuristicPlayer) SetMark(mark entity.Cell) error {
	if !mark.IsMark() {
		return fmt.Errorf("%w: %q", entity.ErrInvalidMark, mark)
	}

	that.mark = mark

	return nil
}

func (that *HeuristicPlayer) SetActive(active bool) {
	that.active = active
}

func (that *HeuristicPlayer) SetDifficulty(difficulty entity.Difficulty) error {
	if _, err := entity.ParseDifficulty(string(difficulty)); err != nil {
		return err
	}

	that.difficulty = difficulty

	return nil
}

// Configure - applies round settings in one go.
func (that *HeuristicPlayer) Configure(settings *entity.Settings) error {
	if err := that.SetMark(settings.ComputerMark); err != nil {
		return err
	}

	if err := that.SetDifficulty(settings.Difficulty); err != nil {
		return err
	}

	that.SetActive(settings.ComputerActive)

	return nil
}

func (that *HeuristicPlayer) Mark() entity.Cell {
	return that.mark
}

func (that *HeuristicPlayer) Opponent() entity.Cell {
	return that.mark.Opponent()
}

func (that *HeuristicPlayer) Active() bool {
	return that.active
}

func (that *HeuristicPlayer) Difficulty() entity.Difficulty {
	return that.difficulty
}

// PlayTurn picks a cell for the computer and places its mark. It returns a nil
// decision without touching the state when the computer is inactive or it is
// not the computer's turn.
func (that *HeuristicPlayer) PlayTurn(state gameState) (*Decision, error) {
	if !that.active || state.Turn() != that.mark {
		return nil, nil //nolint: nilnil // nothing to do is not an error
	}

	if !state.HasMovesRemaining() {
		return nil, apperror.ErrNoMovesRemaining
	}

	decision := that.choose(state)

	if err := state.Place(decision.Position.Row, decision.Position.Column); err != nil {
		return nil, fmt.Errorf("failed to place computer mark at %s: %w", decision.Position, err)
	}

	return &decision, nil
}

// choose requires at least one free cell.
func (that *HeuristicPlayer) choose(state board) Decision {
	switch that.difficulty {
	case entity.HighDifficulty:
		if decision, ok := that.tryLines(state); ok {
			return decision
		}

		if pos, rule, ok := that.positionalPlay(state); ok {
			return Decision{Position: pos, Source: SourcePositional, Rule: rule}
		}

		return that.randomPlay(state)
	case entity.MediumDifficulty:
		if decision, ok := that.tryLines(state); ok {
			return decision
		}

		return that.randomPlay(state)
	default:
		return that.randomPlay(state)
	}
}

func (that *HeuristicPlayer) tryLines(state board) (Decision, bool) {
	if pos, rule, ok := linePlay(state, that.mark); ok {
		return Decision{Position: pos, Source: SourceOwnLine, Rule: rule}, true
	}

	if pos, rule, ok := linePlay(state, that.Opponent()); ok {
		return Decision{Position: pos, Source: SourceBlock, Rule: rule}, true
	}

	return Decision{}, false
}

// randomPlay samples cells until it hits a free one.
func (that *HeuristicPlayer) randomPlay(state board) Decision {
	for {
		row := that.random.IntRange(1, entity.BoardSize+1)
		column := that.random.IntRange(1, entity.BoardSize+1)

		if state.IsFree(row, column) {
			return Decision{
				Position: entity.Position{Row: row, Column: column},
				Source:   SourceRandom,
				Rule:     "random free cell",
			}
		}
	}
}
