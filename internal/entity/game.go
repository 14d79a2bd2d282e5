package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

type Move struct {
	Row  int
	Col  int
	Mark Mark
}

type Game struct {
	ID         string
	Board      *Board
	Turn       Mark
	Winner     Mark
	Status     string
	Moves      []Move
	StartedAt  time.Time
	FinishedAt time.Time
}

func NewGame(id string, board *Board, firstTurn Mark) *Game {
	return &Game{
		ID:        id,
		Board:     board,
		Turn:      firstTurn,
		Status:    StatusOngoing,
		StartedAt: time.Now(),
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

// IsWon reports a finished game with a winning line.
func (that *Game) IsWon() bool {
	return that.IsFinished() && that.Winner.IsPlayer()
}

// IsDraw reports a finished game with a full board and no winner.
func (that *Game) IsDraw() bool {
	return that.IsFinished() && that.Winner == PlayerTie
}

// Finish moves the game into its terminal state. winner is a player mark or PlayerTie.
func (that *Game) Finish(winner Mark) {
	that.Winner = winner
	that.Status = StatusFinished
	that.FinishedAt = time.Now()
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

// Result builds the ledger record for a finished game.
func (that *Game) Result() *Result {
	return &Result{
		GameID:     that.ID,
		Winner:     that.Winner,
		Rows:       that.Board.Rows(),
		Cols:       that.Board.Cols(),
		Moves:      len(that.Moves),
		FinishedAt: that.FinishedAt,
	}
}
