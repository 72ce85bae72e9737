package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/bot"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errRedisDown = errors.New("redis down")

const profile = "default"

type mockSettingsRepo struct {
	mock.Mock
}

func (m *mockSettingsRepo) Get(ctx context.Context, profile string) (*entity.Settings, error) {
	args := m.Called(ctx, profile)
	settings, _ := args.Get(0).(*entity.Settings)

	return settings, args.Error(1)
}

func (m *mockSettingsRepo) Save(ctx context.Context, profile string, settings *entity.Settings) error {
	args := m.Called(ctx, profile, settings)
	return args.Error(0)
}

var defaultSettings = entity.Settings{
	ComputerActive: true,
	Difficulty:     entity.HighDifficulty,
	ComputerMark:   entity.PlayerO,
}

func newRoundManager(t *testing.T, repo settingsRepo) *RoundManager {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	defaults := defaultSettings

	return NewRoundManager(logger, profile, &defaults, repo, bot.NewHeuristicPlayer(bot.NewSeededRandomSource(1)))
}

func humanSettings() *entity.Settings {
	return &entity.Settings{ComputerActive: false, Difficulty: entity.LowDifficulty, ComputerMark: entity.PlayerO}
}

func TestRoundManager_StartRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Remembers settings and clears the board", func(t *testing.T) {
		// Given: a manager in the middle of a round
		repo := &mockSettingsRepo{}
		repo.On("Save", mock.Anything, profile, mock.AnythingOfType("*entity.Settings")).Return(nil).Twice()
		manager := newRoundManager(t, repo)
		require.NoError(t, manager.StartRound(ctx, humanSettings()))
		_, err := manager.HumanTurn(5)
		require.NoError(t, err)
		firstRound := manager.RoundID()

		// When: a new round starts against the computer
		settings := &entity.Settings{ComputerActive: true, Difficulty: entity.MediumDifficulty, ComputerMark: entity.PlayerX}
		err = manager.StartRound(ctx, settings)

		// Then: the board is empty, X moves and the settings are applied
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, manager.Cell(entity.Center))
		assert.Equal(t, entity.PlayerX, manager.Turn())
		assert.Equal(t, *settings, manager.Settings())
		assert.NotEqual(t, firstRound, manager.RoundID())
		assert.True(t, manager.computer.Active())
		assert.Equal(t, entity.MediumDifficulty, manager.computer.Difficulty())
		assert.Equal(t, entity.PlayerX, manager.computer.Mark())
		repo.AssertExpectations(t)
	})

	t.Run("Rejects invalid settings", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		manager := newRoundManager(t, repo)

		err := manager.StartRound(ctx, &entity.Settings{Difficulty: "expert", ComputerMark: entity.PlayerO})

		require.ErrorIs(t, err, entity.ErrInvalidDifficulty)
		assert.Empty(t, manager.RoundID())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Starts even when settings cannot be remembered", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		repo.On("Save", mock.Anything, profile, mock.Anything).Return(errRedisDown).Once()
		manager := newRoundManager(t, repo)

		err := manager.StartRound(ctx, humanSettings())

		require.NoError(t, err)
		assert.NotEmpty(t, manager.RoundID())
	})
}

func TestRoundManager_LastSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("Falls back to defaults", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		repo.On("Get", mock.Anything, profile).Return(nil, repository.ErrSettingsNotFound).Once()
		manager := newRoundManager(t, repo)

		settings, err := manager.LastSettings(ctx)

		require.NoError(t, err)
		assert.Equal(t, defaultSettings, *settings)
	})

	t.Run("Returns remembered settings", func(t *testing.T) {
		remembered := &entity.Settings{ComputerActive: true, Difficulty: entity.LowDifficulty, ComputerMark: entity.PlayerX}
		repo := &mockSettingsRepo{}
		repo.On("Get", mock.Anything, profile).Return(remembered, nil).Once()
		manager := newRoundManager(t, repo)

		settings, err := manager.LastSettings(ctx)

		require.NoError(t, err)
		assert.Equal(t, remembered, settings)
	})

	t.Run("Falls back to defaults on invalid remembered settings", func(t *testing.T) {
		// Given: storage holding a level this build does not know
		repo := &mockSettingsRepo{}
		repo.On("Get", mock.Anything, profile).
			Return(&entity.Settings{Difficulty: "expert", ComputerMark: entity.PlayerO}, nil).Once()
		var logs bytes.Buffer
		manager := newRoundManager(t, repo)
		manager.logger = slog.New(slog.NewTextHandler(&logs, nil))

		// When: the last settings are read
		settings, err := manager.LastSettings(ctx)

		// Then: the defaults come back and the bad record is reported
		require.NoError(t, err)
		assert.Equal(t, defaultSettings, *settings)
		assert.Contains(t, logs.String(), "level=WARN")
		assert.Contains(t, logs.String(), "remembered settings are invalid")
	})

	t.Run("Returns storage errors", func(t *testing.T) {
		repo := &mockSettingsRepo{}
		repo.On("Get", mock.Anything, profile).Return(nil, errRedisDown).Once()
		manager := newRoundManager(t, repo)

		settings, err := manager.LastSettings(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, settings)
	})
}

func TestRoundManager_RepeatLastRound(t *testing.T) {
	// Given: settings remembered in a real in-memory repository
	ctx := context.Background()
	repo := repository.NewMemorySettingsRepository()
	remembered := &entity.Settings{ComputerActive: true, Difficulty: entity.HighDifficulty, ComputerMark: entity.PlayerX}
	require.NoError(t, repo.Save(ctx, profile, remembered))
	manager := newRoundManager(t, repo)

	// When: the last round is repeated
	settings, err := manager.RepeatLastRound(ctx)

	// Then: the computer plays X and opens in the center
	require.NoError(t, err)
	assert.Equal(t, remembered, settings)

	decision, err := manager.ComputerTurn()
	require.NoError(t, err)
	require.NotNil(t, decision)
	assert.Equal(t, entity.Center, decision.Position)
	assert.Equal(t, entity.PlayerX, manager.Cell(entity.Center))
}

func TestRoundManager_Turns(t *testing.T) {
	ctx := context.Background()

	t.Run("Error before a round starts", func(t *testing.T) {
		manager := newRoundManager(t, repository.NewMemorySettingsRepository())

		_, err := manager.ComputerTurn()
		require.ErrorIs(t, err, apperror.ErrRoundNotStarted)

		_, err = manager.HumanTurn(1)
		require.ErrorIs(t, err, apperror.ErrRoundNotStarted)
	})

	t.Run("Human against computer", func(t *testing.T) {
		// Given: a high computer playing X
		manager := newRoundManager(t, repository.NewMemorySettingsRepository())
		require.NoError(t, manager.StartRound(ctx, &entity.Settings{
			ComputerActive: true,
			Difficulty:     entity.HighDifficulty,
			ComputerMark:   entity.PlayerX,
		}))

		// When: the human tries to move first
		_, err := manager.HumanTurn(1)

		// Then: it is not the human's turn
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		// When: the computer moves, then the human picks its cell
		_, err = manager.ComputerTurn()
		require.NoError(t, err)
		_, err = manager.HumanTurn(5)

		// Then: the occupied center is refused and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, entity.PlayerO, manager.Turn())

		pos, err := manager.HumanTurn(1)
		require.NoError(t, err)
		assert.Equal(t, entity.TopLeft, pos)
		assert.Equal(t, entity.PlayerO, manager.Cell(entity.TopLeft))

		// When: the computer is asked twice in a row
		decision, err := manager.ComputerTurn()
		require.NoError(t, err)
		require.NotNil(t, decision)
		decision, err = manager.ComputerTurn()

		// Then: the second call does nothing
		require.NoError(t, err)
		assert.Nil(t, decision)
	})

	t.Run("Human against human until a win", func(t *testing.T) {
		manager := newRoundManager(t, repository.NewMemorySettingsRepository())
		require.NoError(t, manager.StartRound(ctx, humanSettings()))

		for _, number := range []int{1, 4, 2, 5} {
			_, err := manager.HumanTurn(number)
			require.NoError(t, err)
			require.False(t, manager.Result().IsFinished())
		}

		_, err := manager.HumanTurn(3)
		require.NoError(t, err)

		assert.Equal(t, Result{Outcome: OutcomeWin, Winner: entity.PlayerX}, manager.Result())

		_, err = manager.HumanTurn(9)
		require.ErrorIs(t, err, apperror.ErrRoundFinished)
	})

	t.Run("Human against human until a draw", func(t *testing.T) {
		manager := newRoundManager(t, repository.NewMemorySettingsRepository())
		require.NoError(t, manager.StartRound(ctx, humanSettings()))

		for _, number := range []int{1, 2, 3, 5, 4, 6, 8, 7, 9} {
			_, err := manager.HumanTurn(number)
			require.NoError(t, err)
		}

		assert.Equal(t, Result{Outcome: OutcomeDraw}, manager.Result())

		_, err := manager.ComputerTurn()
		require.ErrorIs(t, err, apperror.ErrRoundFinished)
	})

	t.Run("Error on numbers off the board", func(t *testing.T) {
		manager := newRoundManager(t, repository.NewMemorySettingsRepository())
		require.NoError(t, manager.StartRound(ctx, humanSettings()))

		for _, number := range []int{0, 10, -3} {
			_, err := manager.HumanTurn(number)
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
		}

		assert.Equal(t, entity.PlayerX, manager.Turn())
	})
}
