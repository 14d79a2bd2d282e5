// Package console runs a game over line-oriented text input and output.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const cellDelimiter = " | "

// Renderer draws boards and messages onto a writer.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Render writes one line per row with a dashed separator under each.
func (that *Renderer) Render(board *entity.Board) error {
	var sb strings.Builder

	separator := strings.Repeat("-", 4*board.Cols()+1)
	cells := make([]string, board.Cols())

	for row := 0; row < board.Rows(); row++ {
		for col := range cells {
			cells[col] = cellText(board.Cell(row, col))
		}

		sb.WriteString(strings.Join(cells, cellDelimiter))
		sb.WriteByte('\n')
		sb.WriteString(separator)
		sb.WriteByte('\n')
	}

	return that.write(sb.String())
}

// Announce prints the outcome of a finished game.
func (that *Renderer) Announce(game *entity.Game) error {
	if game.IsDraw() {
		return that.Message("It's a tie!")
	}

	return that.Message(fmt.Sprintf("Player %s wins!", game.Winner))
}

func (that *Renderer) RenderScores(scores []*entity.Score) error {
	for _, score := range scores {
		line := fmt.Sprintf("Player %s: %d wins, %d draws, %d losses", score.Mark, score.Wins, score.Draws, score.Losses)
		if err := that.Message(line); err != nil {
			return err
		}
	}

	return nil
}

// RenderResults lists finished games, one per line.
func (that *Renderer) RenderResults(results []*entity.Result) error {
	for _, result := range results {
		outcome := fmt.Sprintf("Player %s won", result.Winner)
		if result.IsDraw() {
			outcome = "tie"
		}

		line := fmt.Sprintf("%s  %dx%d  %s in %d moves",
			result.FinishedAt.Format(time.DateTime), result.Rows, result.Cols, outcome, result.Moves)
		if err := that.Message(line); err != nil {
			return err
		}
	}

	return nil
}

func (that *Renderer) Message(msg string) error {
	return that.write(msg + "\n")
}

func (that *Renderer) Prompt(msg string) error {
	return that.write(msg)
}

func (that *Renderer) write(s string) error {
	if _, err := io.WriteString(that.out, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}

func cellText(mark entity.Mark) string {
	if mark == entity.EmptyCell {
		return " "
	}
	return string(mark)
}
