package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

// Ledger keeps finished games and the running tallies of both marks.
type Ledger struct {
	client  *redis.Client
	results ResultRepository
	scores  ScoreRepository
}

func NewLedger(client *redis.Client) *Ledger {
	return &Ledger{
		client:  client,
		results: NewResultRepository(client),
		scores:  NewScoreRepository(client),
	}
}

// RecordResult stores the result and bumps the tallies in one MULTI/EXEC.
func (that *Ledger) RecordResult(ctx context.Context, result *entity.Result) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if err := queueResult(ctx, pipe, result); err != nil {
			return err
		}

		queueScore(ctx, pipe, result)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *Ledger) Scores(ctx context.Context) ([]*entity.Score, error) {
	scores := make([]*entity.Score, 0, 2)
	for _, mark := range []entity.Mark{entity.PlayerX, entity.PlayerO} {
		score, err := that.scores.GetByMark(ctx, mark)
		if err != nil {
			return nil, fmt.Errorf("failed to get score: %w", err)
		}

		scores = append(scores, score)
	}

	return scores, nil
}

// RecentResults returns up to limit results, newest first.
func (that *Ledger) RecentResults(ctx context.Context, limit int) ([]*entity.Result, error) {
	results, err := that.results.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}
