package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-cli/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-cli/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) RecordResult(ctx context.Context, result *entity.Result) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *mockLedger) Scores(ctx context.Context) ([]*entity.Score, error) {
	args := m.Called(ctx)
	scores, _ := args.Get(0).([]*entity.Score)
	return scores, args.Error(1)
}

func (m *mockLedger) RecentResults(ctx context.Context, limit int) ([]*entity.Result, error) {
	args := m.Called(ctx, limit)
	results, _ := args.Get(0).([]*entity.Result)
	return results, args.Error(1)
}

func newTestManager(t *testing.T, ledger Ledger) *GameManager {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	manager := NewGameManager(logger, ledger, 3, 3, entity.PlayerX)

	_, err := manager.StartGame(context.Background())
	require.NoError(t, err)

	return manager
}

// playRowWin makes X take row 0 while O plays row 1.
func playRowWin(t *testing.T, manager *GameManager) *entity.Game {
	t.Helper()

	var (
		game *entity.Game
		err  error
	)
	for _, cell := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		game, err = manager.MakeTurn(context.Background(), cell[0], cell[1])
		require.NoError(t, err)
	}

	return game
}

func TestGameManager_StartGame(t *testing.T) {
	t.Run("Starts an empty game with the configured first turn", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		manager := NewGameManager(logger, NopLedger{}, 3, 4, entity.PlayerO)

		// When: a game is started
		game, err := manager.StartGame(context.Background())

		// Then: it is ongoing with O to move on a 3x4 board
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Equal(t, 3, game.Board.Rows())
		assert.Equal(t, 4, game.Board.Cols())
		assert.Same(t, game, manager.Game())
	})

	t.Run("Bad board size is an error", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		manager := NewGameManager(logger, NopLedger{}, 0, 3, entity.PlayerX)

		game, err := manager.StartGame(context.Background())

		require.ErrorIs(t, err, apperror.ErrInvalidBoardSize)
		assert.Nil(t, game)
	})
}

func TestGameManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns ErrGameIsNotStarted before StartGame", func(t *testing.T) {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		manager := NewGameManager(logger, NopLedger{}, 3, 3, entity.PlayerX)

		_, err := manager.MakeTurn(ctx, 0, 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Alternates turns", func(t *testing.T) {
		ledger := &mockLedger{}
		manager := newTestManager(t, ledger)

		// When: X then O play
		game, err := manager.MakeTurn(ctx, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerO, game.Turn)

		game, err = manager.MakeTurn(ctx, 1, 1)
		require.NoError(t, err)

		// Then: both marks are placed and X is to move again
		assert.Equal(t, entity.PlayerX, game.Board.Cell(0, 0))
		assert.Equal(t, entity.PlayerO, game.Board.Cell(1, 1))
		assert.Equal(t, entity.PlayerX, game.Turn)
		ledger.AssertNotCalled(t, "RecordResult", mock.Anything, mock.Anything)
	})

	t.Run("Invalid move leaves the game unchanged", func(t *testing.T) {
		manager := newTestManager(t, &mockLedger{})
		before := manager.Game().Board.Clone()

		// When: row 5 is played on a 3x3 board
		game, err := manager.MakeTurn(ctx, 5, 0)

		// Then: the move is rejected with nothing changed
		require.ErrorIs(t, err, apperror.ErrInvalidMove)
		assert.Equal(t, before, game.Board)
		assert.Equal(t, entity.PlayerX, game.Turn)
	})

	t.Run("Records the result once the game is won", func(t *testing.T) {
		// Given: a ledger expecting one X win
		ledger := &mockLedger{}
		ledger.On("RecordResult", mock.Anything, mock.MatchedBy(func(result *entity.Result) bool {
			return result.Winner == entity.PlayerX && result.Moves == 5
		})).Return(nil).Once()
		manager := newTestManager(t, ledger)

		// When: X completes row 0
		game := playRowWin(t, manager)

		// Then: the game is won and the ledger saw it
		assert.True(t, game.IsWon())
		ledger.AssertExpectations(t)

		// And: further moves are refused without a second record
		_, err := manager.MakeTurn(ctx, 2, 2)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		ledger.AssertNumberOfCalls(t, "RecordResult", 1)
	})

	t.Run("Ledger failure does not fail the turn", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("RecordResult", mock.Anything, mock.Anything).Return(errRedisDown).Once()
		manager := newTestManager(t, ledger)

		game := playRowWin(t, manager)

		assert.True(t, game.IsWon())
		ledger.AssertExpectations(t)
	})
}

func TestGameManager_Scores(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns ledger scores", func(t *testing.T) {
		scores := []*entity.Score{{Mark: entity.PlayerX, Wins: 1}, {Mark: entity.PlayerO, Losses: 1}}
		ledger := &mockLedger{}
		ledger.On("Scores", mock.Anything).Return(scores, nil).Once()
		manager := newTestManager(t, ledger)

		got, err := manager.Scores(ctx)

		require.NoError(t, err)
		assert.Equal(t, scores, got)
	})

	t.Run("Wraps ledger errors", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("Scores", mock.Anything).Return(nil, errRedisDown).Once()
		manager := newTestManager(t, ledger)

		got, err := manager.Scores(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, got)
	})

	t.Run("NopLedger keeps nothing", func(t *testing.T) {
		manager := newTestManager(t, NopLedger{})

		got, err := manager.Scores(ctx)

		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestGameManager_RecentResults(t *testing.T) {
	ctx := context.Background()

	t.Run("Passes the limit to the ledger", func(t *testing.T) {
		results := []*entity.Result{{GameID: "2", Winner: entity.PlayerTie}, {GameID: "1", Winner: entity.PlayerX}}
		ledger := &mockLedger{}
		ledger.On("RecentResults", mock.Anything, 3).Return(results, nil).Once()
		manager := newTestManager(t, ledger)

		got, err := manager.RecentResults(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, results, got)
		ledger.AssertExpectations(t)
	})

	t.Run("Wraps ledger errors", func(t *testing.T) {
		ledger := &mockLedger{}
		ledger.On("RecentResults", mock.Anything, 3).Return(nil, errRedisDown).Once()
		manager := newTestManager(t, ledger)

		got, err := manager.RecentResults(ctx, 3)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, got)
	})
}
