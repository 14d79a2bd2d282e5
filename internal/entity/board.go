package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

// Opponent returns the mark that plays after m.
func (m Mark) Opponent() Mark {
	if m == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (m Mark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// ParseMark accepts "X" or "O".
func ParseMark(s string) (Mark, error) {
	switch mark := Mark(s); mark {
	case PlayerX, PlayerO:
		return mark, nil
	default:
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

// Board is a rows x cols grid stored row-major in a flat slice.
type Board struct {
	rows  int
	cols  int
	cells []Mark
}

func NewBoard(rows, cols int) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", apperror.ErrInvalidBoardSize, rows, cols)
	}

	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Mark, rows*cols),
	}, nil
}

func (that *Board) Rows() int {
	return that.rows
}

func (that *Board) Cols() int {
	return that.cols
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.rows && col >= 0 && col < that.cols
}

// Cell returns EmptyCell for coordinates outside the board.
func (that *Board) Cell(row, col int) Mark {
	if !that.InBounds(row, col) {
		return EmptyCell
	}
	return that.cells[row*that.cols+col]
}

// IsValidMove reports whether (row, col) is on the board and still empty.
func (that *Board) IsValidMove(row, col int) bool {
	return that.InBounds(row, col) && that.Cell(row, col) == EmptyCell
}

// ApplyMove places mark at (row, col) without checking occupancy; callers validate first.
func (that *Board) ApplyMove(row, col int, mark Mark) {
	if !that.InBounds(row, col) {
		return
	}
	that.cells[row*that.cols+col] = mark
}

func (that *Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func (that *Board) Clone() *Board {
	cells := make([]Mark, len(that.cells))
	copy(cells, that.cells)

	return &Board{
		rows:  that.rows,
		cols:  that.cols,
		cells: cells,
	}
}
