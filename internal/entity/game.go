package entity

import (
	"errors"
	"fmt"
)

type Cell string

const (
	PlayerX   Cell = "X"
	PlayerO   Cell = "O"
	EmptyCell Cell = ""
)

const (
	BoardSize = 3

	FirstCellNumber = 1
	LastCellNumber  = BoardSize * BoardSize
)

var ErrInvalidMark = errors.New("invalid mark")

// Position addresses a cell with 1-indexed coordinates. Row runs along a
// displayed line of the board and Column selects the displayed line, so the
// top line is Column 1.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

var (
	TopLeft      = Position{Row: 1, Column: 1}
	TopCenter    = Position{Row: 2, Column: 1}
	TopRight     = Position{Row: 3, Column: 1}
	CenterLeft   = Position{Row: 1, Column: 2}
	Center       = Position{Row: 2, Column: 2}
	CenterRight  = Position{Row: 3, Column: 2}
	BottomLeft   = Position{Row: 1, Column: 3}
	BottomCenter = Position{Row: 2, Column: 3}
	BottomRight  = Position{Row: 3, Column: 3}
)

func (that Cell) String() string {
	return string(that)
}

// IsMark reports whether the cell holds a player mark rather than being empty.
func (that Cell) IsMark() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark, or EmptyCell for an empty cell.
func (that Cell) Opponent() Cell {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// ParseMark - converts "X" or "O" into a Cell.
func ParseMark(mark string) (Cell, error) {
	switch Cell(mark) {
	case PlayerX, PlayerO:
		return Cell(mark), nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", ErrInvalidMark, mark)
	}
}

func (that Position) InRange() bool {
	return that.Row >= 1 && that.Row <= BoardSize && that.Column >= 1 && that.Column <= BoardSize
}

// Add returns the position shifted by the given deltas. The result may be out of range.
func (that Position) Add(rowDelta, columnDelta int) Position {
	return Position{Row: that.Row + rowDelta, Column: that.Column + columnDelta}
}

// Number returns the cell number (1..9) shown to the player for this position.
func (that Position) Number() int {
	return (that.Column-1)*BoardSize + that.Row
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Column)
}

// PositionFromNumber maps a cell number typed by a player (1..9) to a position.
func PositionFromNumber(number int) (Position, bool) {
	if number < FirstCellNumber || number > LastCellNumber {
		return Position{}, false
	}

	return Position{
		Row:    (number-1)%BoardSize + 1,
		Column: (number-1)/BoardSize + 1,
	}, true
}
