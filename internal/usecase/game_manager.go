package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/rocketscienceinc/tictactoe-cli/internal/tictactoe"
)

// Ledger stores finished games.
type Ledger interface {
	RecordResult(ctx context.Context, result *entity.Result) error
	Scores(ctx context.Context) ([]*entity.Score, error)
	RecentResults(ctx context.Context, limit int) ([]*entity.Result, error)
}

// NopLedger is used when no results store is configured.
type NopLedger struct{}

func (NopLedger) RecordResult(context.Context, *entity.Result) error {
	return nil
}

func (NopLedger) Scores(context.Context) ([]*entity.Score, error) {
	return nil, nil
}

func (NopLedger) RecentResults(context.Context, int) ([]*entity.Result, error) {
	return nil, nil
}

// GameManager owns the active game and reports finished ones to the ledger.
type GameManager struct {
	logger *slog.Logger
	ledger Ledger

	rows      int
	cols      int
	firstTurn entity.Mark

	game *entity.Game
}

func NewGameManager(logger *slog.Logger, ledger Ledger, rows, cols int, firstTurn entity.Mark) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),
		ledger: ledger,

		rows:      rows,
		cols:      cols,
		firstTurn: firstTurn,
	}
}

// StartGame replaces any previous game with a fresh one.
func (that *GameManager) StartGame(_ context.Context) (*entity.Game, error) {
	board, err := entity.NewBoard(that.rows, that.cols)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	that.game = entity.NewGame(uuid.NewString(), board, that.firstTurn)

	that.logger.Info("game started",
		"gameID", that.game.ID, "rows", that.rows, "cols", that.cols, "firstTurn", that.firstTurn)

	return that.game, nil
}

// Game returns the active game, or nil before StartGame.
func (that *GameManager) Game() *entity.Game {
	return that.game
}

// MakeTurn plays (row, col) for whoever is to move.
func (that *GameManager) MakeTurn(ctx context.Context, row, col int) (*entity.Game, error) {
	if that.game == nil {
		return nil, apperror.ErrGameIsNotStarted
	}

	log := that.logger.With("method", "MakeTurn", "gameID", that.game.ID)

	mover := that.game.Turn
	if err := tictactoe.MakeTurn(that.game, mover, row, col); err != nil {
		log.Debug("turn rejected", "player", mover, "row", row, "col", col, "error", err)
		return that.game, fmt.Errorf("failed to make turn: %w", err)
	}

	log.Debug("turn applied", "player", mover, "row", row, "col", col)

	if that.game.IsFinished() {
		that.recordResult(ctx, that.game)
	}

	return that.game, nil
}

// Scores returns the tallies kept by the ledger, nil when it keeps none.
func (that *GameManager) Scores(ctx context.Context) ([]*entity.Score, error) {
	scores, err := that.ledger.Scores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return scores, nil
}

// RecentResults returns up to limit finished games from the ledger, newest first.
func (that *GameManager) RecentResults(ctx context.Context, limit int) ([]*entity.Result, error) {
	results, err := that.ledger.RecentResults(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	return results, nil
}

func (that *GameManager) recordResult(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "recordResult", "gameID", game.ID)

	if err := that.ledger.RecordResult(ctx, game.Result()); err != nil {
		log.Error("failed to record result", "error", err)
		return
	}

	log.Info("game finished", "winner", game.Winner, "moves", len(game.Moves))
}
