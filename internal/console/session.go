package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const maxEchoedInput = 32

const (
	msgInvalidInput = "Invalid input. Please enter numbers within the valid range."
	msgInvalidMove  = "Invalid move. Try again."
)

// ErrInputClosed is returned when input ends before the game does.
var ErrInputClosed = errors.New("input closed before the game finished")

type gameManager interface {
	StartGame(ctx context.Context) (*entity.Game, error)
	MakeTurn(ctx context.Context, row, col int) (*entity.Game, error)
}

type Session struct {
	logger   *slog.Logger
	manager  gameManager
	input    *bufio.Reader
	renderer *Renderer
}

func NewSession(logger *slog.Logger, manager gameManager, in io.Reader, out io.Writer) *Session {
	return &Session{
		logger:   logger.With("component", "console"),
		manager:  manager,
		input:    bufio.NewReader(in),
		renderer: NewRenderer(out),
	}
}

func (that *Session) Renderer() *Renderer {
	return that.renderer
}

// Run plays one game to a win or a draw and returns it.
func (that *Session) Run(ctx context.Context) (*entity.Game, error) {
	game, err := that.manager.StartGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	for {
		if err = ctx.Err(); err != nil {
			return game, err
		}

		if err = that.renderer.Render(game.Board); err != nil {
			return game, err
		}

		game, err = that.playTurn(ctx, game)
		if err != nil {
			return game, err
		}

		if game.IsFinished() {
			if err = that.renderer.Render(game.Board); err != nil {
				return game, err
			}

			return game, that.renderer.Announce(game)
		}
	}
}

// playTurn reads one move and applies it. Bad input and rejected moves are reported to
// the player and leave the game as it was.
func (that *Session) playTurn(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	board := game.Board

	row, err := that.readInt(fmt.Sprintf("Player %s, enter row (0-%d): ", game.Turn, board.Rows()-1))
	if err != nil {
		return game, that.retry(err, msgInvalidInput, apperror.ErrInvalidInput)
	}

	col, err := that.readInt(fmt.Sprintf("Player %s, enter column (0-%d): ", game.Turn, board.Cols()-1))
	if err != nil {
		return game, that.retry(err, msgInvalidInput, apperror.ErrInvalidInput)
	}

	updated, err := that.manager.MakeTurn(ctx, row, col)
	if err != nil {
		return game, that.retry(err, msgInvalidMove, apperror.ErrInvalidMove)
	}

	return updated, nil
}

// retry prints msg and swallows err when it matches target.
func (that *Session) retry(err error, msg string, target error) error {
	if !errors.Is(err, target) {
		return err
	}

	that.logger.Debug("retrying turn", "error", err)

	return that.renderer.Message(msg)
}

func (that *Session) readInt(prompt string) (int, error) {
	if err := that.renderer.Prompt(prompt); err != nil {
		return 0, err
	}

	raw, err := that.input.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && raw == "":
		return 0, ErrInputClosed
	case err != nil && !errors.Is(err, io.EOF):
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	line := strings.TrimSpace(raw)

	// out-of-range numbers come back clamped, which no board can contain
	value, err := strconv.Atoi(line)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", apperror.ErrInvalidInput, truncate(line, maxEchoedInput))
	}

	return value, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
