package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type sqliteSettings struct {
	conn *sql.DB
}

func NewSQLiteSettingsRepository(conn *sql.DB) SettingsRepository {
	return &sqliteSettings{
		conn: conn,
	}
}

func (that *sqliteSettings) Save(ctx context.Context, profile string, settings *entity.Settings) error {
	query := `INSERT INTO settings (profile, computer_active, difficulty, computer_mark) VALUES (?, ?, ?, ?)
		ON CONFLICT(profile) DO UPDATE SET
			computer_active = excluded.computer_active,
			difficulty = excluded.difficulty,
			computer_mark = excluded.computer_mark`

	_, err := that.conn.ExecContext(ctx, query,
		profile, settings.ComputerActive, string(settings.Difficulty), string(settings.ComputerMark))
	if err != nil {
		return fmt.Errorf("can't save settings: %w", err)
	}

	return nil
}

func (that *sqliteSettings) Get(ctx context.Context, profile string) (*entity.Settings, error) {
	query := `SELECT computer_active, difficulty, computer_mark FROM settings WHERE profile = ?`

	var (
		settings   entity.Settings
		difficulty string
		mark       string
	)

	err := that.conn.QueryRowContext(ctx, query, profile).Scan(&settings.ComputerActive, &difficulty, &mark)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't find settings: %w", err)
	}

	settings.Difficulty = entity.Difficulty(difficulty)
	settings.ComputerMark = entity.Cell(mark)

	return &settings, nil
}
