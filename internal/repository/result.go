package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
)

const resultsListKey = "results"

var ErrResultNotFound = errors.New("result not found")

type ResultRepository interface {
	Save(ctx context.Context, result *entity.Result) error
	GetByID(ctx context.Context, gameID string) (*entity.Result, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Result, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func resultKey(gameID string) string {
	return "result:" + gameID
}

func (that *dbResult) Save(ctx context.Context, result *entity.Result) error {
	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return queueResult(ctx, pipe, result)
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

// queueResult adds the writes for result to pipe.
func queueResult(ctx context.Context, pipe redis.Pipeliner, result *entity.Result) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	pipe.Set(ctx, resultKey(result.GameID), resultJSON, 0)
	pipe.LPush(ctx, resultsListKey, result.GameID)

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, gameID string) (*entity.Result, error) {
	response, err := that.client.Get(ctx, resultKey(gameID)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get result by id: %w", err)
	}

	var result entity.Result
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &result, nil
}

// ListRecent returns up to limit results, newest first.
func (that *dbResult) ListRecent(ctx context.Context, limit int) ([]*entity.Result, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.LRange(ctx, resultsListKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]*entity.Result, 0, len(ids))
	for _, id := range ids {
		result, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrResultNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}
