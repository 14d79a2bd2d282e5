package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const (
	fieldWins   = "wins"
	fieldDraws  = "draws"
	fieldLosses = "losses"
)

type ScoreRepository interface {
	Record(ctx context.Context, result *entity.Result) error
	GetByMark(ctx context.Context, mark entity.Mark) (*entity.Score, error)
}

type dbScore struct {
	client *redis.Client
}

func NewScoreRepository(client *redis.Client) ScoreRepository {
	return &dbScore{
		client: client,
	}
}

func scoreKey(mark entity.Mark) string {
	return "score:" + string(mark)
}

// Record bumps the tallies of both marks for a finished game.
func (that *dbScore) Record(ctx context.Context, result *entity.Result) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		queueScore(ctx, pipe, result)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}

	return nil
}

func queueScore(ctx context.Context, pipe redis.Pipeliner, result *entity.Result) {
	if result.IsDraw() {
		pipe.HIncrBy(ctx, scoreKey(entity.PlayerX), fieldDraws, 1)
		pipe.HIncrBy(ctx, scoreKey(entity.PlayerO), fieldDraws, 1)
		return
	}

	pipe.HIncrBy(ctx, scoreKey(result.Winner), fieldWins, 1)
	pipe.HIncrBy(ctx, scoreKey(result.Winner.Opponent()), fieldLosses, 1)
}

// GetByMark returns a zero score for a mark that has never played.
func (that *dbScore) GetByMark(ctx context.Context, mark entity.Mark) (*entity.Score, error) {
	fields, err := that.client.HGetAll(ctx, scoreKey(mark)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	score := &entity.Score{Mark: mark}
	for field, dst := range map[string]*int{
		fieldWins:   &score.Wins,
		fieldDraws:  &score.Draws,
		fieldLosses: &score.Losses,
	} {
		value, ok := fields[field]
		if !ok {
			continue
		}

		if *dst, err = strconv.Atoi(value); err != nil {
			return nil, fmt.Errorf("failed to parse %s for %s: %w", field, mark, err)
		}
	}

	return score, nil
}
