package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
	"github.com/rocketscienceinc/tictactoe-cli/internal/console"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-cli/internal/usecase"
)

const recentResultsShown = 5

// RunApp - plays one game on in/out and, when a results store is configured, prints the tallies.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx := context.Background()

	var gameLedger usecase.Ledger = usecase.NopLedger{}
	if conf.Redis.Enabled {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameLedger = repository.NewLedger(redisStorage.Connection)
	}

	gameManager := usecase.NewGameManager(logger, gameLedger, conf.Board.Rows, conf.Board.Cols, conf.FirstMark())
	session := console.NewSession(logger, gameManager, in, out)

	game, err := session.Run(ctx)
	if errors.Is(err, console.ErrInputClosed) {
		log.Info("input closed, leaving unfinished game",
			"gameID", gameManager.Game().ID, "moves", len(gameManager.Game().Moves))
		return nil
	}
	if err != nil {
		return fmt.Errorf("game session failed: %w", err)
	}

	log.Info("game over", "gameID", game.ID, "winner", game.Winner)

	if !conf.Redis.Enabled {
		return nil
	}

	return printLedger(ctx, log, gameManager, session.Renderer())
}

// printLedger shows the tallies and the last few games. Ledger read errors are only logged.
func printLedger(ctx context.Context, log *slog.Logger, gameManager *usecase.GameManager, renderer *console.Renderer) error {
	scores, err := gameManager.Scores(ctx)
	if err != nil {
		log.Warn("could not load scores", "error", err)
		return nil
	}

	if err = renderer.RenderScores(scores); err != nil {
		return fmt.Errorf("failed to print scores: %w", err)
	}

	results, err := gameManager.RecentResults(ctx, recentResultsShown)
	if err != nil {
		log.Warn("could not load recent results", "error", err)
		return nil
	}

	if len(results) == 0 {
		return nil
	}

	if err = renderer.Message("Recent games:"); err != nil {
		return fmt.Errorf("failed to print recent results: %w", err)
	}

	if err = renderer.RenderResults(results); err != nil {
		return fmt.Errorf("failed to print recent results: %w", err)
	}

	return nil
}
