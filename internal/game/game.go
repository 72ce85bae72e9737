package game

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// State owns the board of one round and whose move is next. It is the only
// writer of the board.
type State struct {
	board Board
	turn  entity.Cell
}

func New() *State {
	state := &State{}
	state.Reset()

	return state
}

// FromCells builds a state from an arbitrary board. The board is not checked
// for reachability.
func FromCells(board Board, turn entity.Cell) *State {
	return &State{
		board: board,
		turn:  turn,
	}
}

// Reset - starts over with an empty board and X to move.
func (that *State) Reset() {
	*that = State{turn: entity.PlayerX}
}

// Get returns the cell at (row, column), or EmptyCell when the coordinates are off the board.
func (that *State) Get(row, column int) entity.Cell {
	if !inRange(row, column) {
		return entity.EmptyCell
	}

	return that.board[row-1][column-1]
}

func (that *State) Turn() entity.Cell {
	return that.turn
}

func (that *State) IsFree(row, column int) bool {
	return inRange(row, column) && that.board[row-1][column-1] == entity.EmptyCell
}

// Place puts the mark of the current turn at (row, column) and passes the
// turn to the other player. Nothing changes when an error is returned.
func (that *State) Place(row, column int) error {
	if !inRange(row, column) {
		return fmt.Errorf("%w: %d,%d", apperror.ErrInvalidCell, row, column)
	}

	if that.board[row-1][column-1] != entity.EmptyCell {
		return fmt.Errorf("%w: %d,%d", apperror.ErrCellOccupied, row, column)
	}

	if !that.turn.IsMark() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidTurn, that.turn)
	}

	that.board[row-1][column-1] = that.turn
	that.turn = that.turn.Opponent()

	return nil
}

func (that *State) HasMovesRemaining() bool {
	for _, line := range that.board {
		for _, cell := range line {
			if cell == entity.EmptyCell {
				return true
			}
		}
	}

	return false
}

// Winner returns the mark holding a full line, or EmptyCell when there is none.
func (that *State) Winner() entity.Cell {
	for _, line := range WinLines {
		a := that.Get(line[0].Row, line[0].Column)
		b := that.Get(line[1].Row, line[1].Column)
		c := that.Get(line[2].Row, line[2].Column)

		if a != entity.EmptyCell && a == b && b == c {
			return a
		}
	}

	return entity.EmptyCell
}

// IsDraw - the board is full and nobody won.
func (that *State) IsDraw() bool {
	return that.Winner() == entity.EmptyCell && !that.HasMovesRemaining()
}

// Cells returns a copy of the board.
func (that *State) Cells() Board {
	return that.board
}

func inRange(row, column int) bool {
	return entity.Position{Row: row, Column: column}.InRange()
}
