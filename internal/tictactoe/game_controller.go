package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// MakeTurn validates and applies a move for player, then moves the game to its next state.
func MakeTurn(gameInstance *entity.Game, player entity.Mark, row, col int) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(gameInstance, player, row, col); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board.ApplyMove(row, col, player)
	gameInstance.Moves = append(gameInstance.Moves, entity.Move{Row: row, Col: col, Mark: player})
	updateGameStatus(gameInstance, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, playerTurn entity.Mark, row, col int) error {
	if gameInstance.Turn != playerTurn {
		return apperror.ErrNotYourTurn
	}

	board := gameInstance.Board
	if !board.InBounds(row, col) {
		return fmt.Errorf("%w: %w (%d, %d) on %dx%d board",
			apperror.ErrInvalidMove, apperror.ErrOutOfBounds, row, col, board.Rows(), board.Cols())
	}

	if !board.IsValidMove(row, col) {
		return fmt.Errorf("%w: %w (%d, %d)", apperror.ErrInvalidMove, apperror.ErrCellOccupied, row, col)
	}

	return nil
}

// updateGameStatus - a win beats a full board on the same move.
func updateGameStatus(gameInstance *entity.Game, player entity.Mark) {
	switch {
	case HasWon(gameInstance.Board, player):
		gameInstance.Finish(player)
	case gameInstance.Board.IsFull():
		gameInstance.Finish(entity.PlayerTie)
	default:
		gameInstance.Turn = player.Opponent()
	}
}

// HasWon reports whether any full row, column or, on square boards, diagonal belongs to player.
func HasWon(board *entity.Board, player entity.Mark) bool {
	if !player.IsPlayer() {
		return false
	}

	rows, cols := board.Rows(), board.Cols()

	for row := 0; row < rows; row++ {
		if lineOf(board, player, row, 0, 0, 1, cols) {
			return true
		}
	}

	for col := 0; col < cols; col++ {
		if lineOf(board, player, 0, col, 1, 0, rows) {
			return true
		}
	}

	if rows != cols {
		return false
	}

	return lineOf(board, player, 0, 0, 1, 1, rows) || lineOf(board, player, 0, cols-1, 1, -1, rows)
}

// lineOf walks n cells from (row, col) in steps of (dRow, dCol).
func lineOf(board *entity.Board, player entity.Mark, row, col, dRow, dCol, n int) bool {
	for i := 0; i < n; i++ {
		if board.Cell(row+i*dRow, col+i*dCol) != player {
			return false
		}
	}
	return true
}
