package entity

import (
	"errors"
	"time"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Result is what the ledger keeps about a finished game.
type Result struct {
	GameID     string    `json:"game_id"`
	Winner     Mark      `json:"winner"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

func (that *Result) IsDraw() bool {
	return that.Winner == PlayerTie
}

type Score struct {
	Mark   Mark `json:"mark"`
	Wins   int  `json:"wins"`
	Draws  int  `json:"draws"`
	Losses int  `json:"losses"`
}
