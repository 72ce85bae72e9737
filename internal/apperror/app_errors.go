package apperror

import "errors"

var (
	ErrInvalidCell      = errors.New("invalid cell")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidTurn      = errors.New("turn does not hold a player mark")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoMovesRemaining = errors.New("no moves remaining")
	ErrRoundFinished    = errors.New("round is already finished")
	ErrRoundNotStarted  = errors.New("round is not started")
)
