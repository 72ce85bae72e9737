package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/bot"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/game"
	"github.com/rocketscienceinc/tictactoe-console/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
)

type settingsRepo interface {
	Get(ctx context.Context, profile string) (*entity.Settings, error)
	Save(ctx context.Context, profile string, settings *entity.Settings) error
}

type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeWin
	OutcomeDraw
)

type Result struct {
	Outcome Outcome
	Winner  entity.Cell
}

func (that Result) IsFinished() bool {
	return that.Outcome != OutcomeOngoing
}

// RoundManager drives rounds between a human and either another human or the
// computer player. It is used from a single goroutine.
type RoundManager struct {
	logger *slog.Logger

	profile      string
	defaults     entity.Settings
	settingsRepo settingsRepo

	computer *bot.HeuristicPlayer
	state    *game.State

	roundID  string
	settings entity.Settings
}

func NewRoundManager(
	logger *slog.Logger,
	profile string,
	defaults *entity.Settings,
	settingsRepo settingsRepo,
	computer *bot.HeuristicPlayer,
) *RoundManager {
	return &RoundManager{
		logger: logger.With("component", "round_manager"),

		profile:      profile,
		defaults:     *defaults,
		settingsRepo: settingsRepo,

		computer: computer,
		state:    game.New(),
	}
}

// StartRound configures the computer, clears the board and remembers the
// settings as the last used option.
func (that *RoundManager) StartRound(ctx context.Context, settings *entity.Settings) error {
	log := that.logger.With("method", "StartRound")

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid round settings: %w", err)
	}

	if err := that.computer.Configure(settings); err != nil {
		return fmt.Errorf("failed to configure computer: %w", err)
	}

	that.state.Reset()
	that.settings = *settings
	that.roundID = pkg.GenerateRoundID()

	if err := that.settingsRepo.Save(ctx, that.profile, settings); err != nil {
		log.Error("failed to remember settings", "round_id", that.roundID, "error", err)
	}

	log.Info("round started",
		"round_id", that.roundID,
		"computer_active", settings.ComputerActive,
		"difficulty", settings.Difficulty,
		"computer_mark", settings.ComputerMark,
	)

	return nil
}

// LastSettings returns the remembered settings of the profile, or the
// configured defaults when nothing valid was remembered yet.
func (that *RoundManager) LastSettings(ctx context.Context) (*entity.Settings, error) {
	log := that.logger.With("method", "LastSettings")

	defaults := that.defaults

	settings, err := that.settingsRepo.Get(ctx, that.profile)
	if errors.Is(err, repository.ErrSettingsNotFound) {
		return &defaults, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get last settings: %w", err)
	}

	if err = settings.Validate(); err != nil {
		log.Warn("remembered settings are invalid, using defaults", "profile", that.profile, "error", err)
		return &defaults, nil
	}

	return settings, nil
}

// RepeatLastRound starts a round with the last used option.
func (that *RoundManager) RepeatLastRound(ctx context.Context) (*entity.Settings, error) {
	settings, err := that.LastSettings(ctx)
	if err != nil {
		return nil, err
	}

	if err = that.StartRound(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// ComputerTurn lets the computer move. A nil decision means the computer had
// nothing to do.
func (that *RoundManager) ComputerTurn() (*bot.Decision, error) {
	log := that.logger.With("method", "ComputerTurn")

	if err := that.ensurePlayable(); err != nil {
		return nil, err
	}

	decision, err := that.computer.PlayTurn(that.state)
	if err != nil {
		return nil, fmt.Errorf("computer failed to play: %w", err)
	}

	if decision == nil {
		return nil, nil //nolint: nilnil // the computer skipped its turn
	}

	log.Debug("computer played",
		"round_id", that.roundID,
		"position", decision.Position.String(),
		"source", decision.Source,
		"rule", decision.Rule,
	)

	that.logIfFinished()

	return decision, nil
}

// HumanTurn places the mark of the current turn on the cell with the given
// number (1..9).
func (that *RoundManager) HumanTurn(number int) (entity.Position, error) {
	if err := that.ensurePlayable(); err != nil {
		return entity.Position{}, err
	}

	pos, ok := entity.PositionFromNumber(number)
	if !ok {
		return entity.Position{}, fmt.Errorf("%w: number %d", apperror.ErrInvalidCell, number)
	}

	if that.computer.Active() && that.state.Turn() == that.computer.Mark() {
		return entity.Position{}, apperror.ErrNotYourTurn
	}

	if err := that.state.Place(pos.Row, pos.Column); err != nil {
		return entity.Position{}, err
	}

	that.logger.Debug("human played", "method", "HumanTurn", "round_id", that.roundID, "position", pos.String())

	that.logIfFinished()

	return pos, nil
}

func (that *RoundManager) Result() Result {
	if winner := that.state.Winner(); winner != entity.EmptyCell {
		return Result{Outcome: OutcomeWin, Winner: winner}
	}

	if !that.state.HasMovesRemaining() {
		return Result{Outcome: OutcomeDraw}
	}

	return Result{Outcome: OutcomeOngoing}
}

func (that *RoundManager) Cell(pos entity.Position) entity.Cell {
	return that.state.Get(pos.Row, pos.Column)
}

func (that *RoundManager) IsFree(pos entity.Position) bool {
	return that.state.IsFree(pos.Row, pos.Column)
}

func (that *RoundManager) Turn() entity.Cell {
	return that.state.Turn()
}

func (that *RoundManager) RoundID() string {
	return that.roundID
}

func (that *RoundManager) Settings() entity.Settings {
	return that.settings
}

func (that *RoundManager) ensurePlayable() error {
	if that.roundID == "" {
		return apperror.ErrRoundNotStarted
	}

	if that.Result().IsFinished() {
		return apperror.ErrRoundFinished
	}

	return nil
}

func (that *RoundManager) logIfFinished() {
	result := that.Result()
	if !result.IsFinished() {
		return
	}

	that.logger.Info("round finished",
		"round_id", that.roundID,
		"draw", result.Outcome == OutcomeDraw,
		"winner", result.Winner.String(),
	)
}
