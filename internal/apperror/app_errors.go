package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrInvalidMove      = errors.New("invalid move")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrOutOfBounds      = errors.New("cell is out of bounds")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidBoardSize = errors.New("board dimensions must be positive")
	ErrInvalidMark      = errors.New("unknown player mark")
)
