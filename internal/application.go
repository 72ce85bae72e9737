package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/bot"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage/sqlite"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-console/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the console game on stdin and stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	return Run(logger, conf, os.Stdin, os.Stdout)
}

// Run wires storage, the computer player and the console driver together and
// plays until the player exits or a signal arrives.
func Run(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	settingsRepo, closeStorage, err := newSettingsRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	defaults, err := conf.Computer.Settings()
	if err != nil {
		return fmt.Errorf("invalid computer settings: %w", err)
	}

	random := bot.NewRandomSource()
	if conf.Computer.Seed != 0 {
		random = bot.NewSeededRandomSource(conf.Computer.Seed)
	}

	computer := bot.NewHeuristicPlayer(random)
	rounds := usecase.NewRoundManager(logger, conf.Profile, defaults, settingsRepo, computer)
	server := console.New(logger, rounds, in, out)

	log.Info("Starting console game", "profile", conf.Profile, "storage", conf.Storage.Driver)

	if err = server.Run(ctx); err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	return nil
}

func newSettingsRepository(ctx context.Context, conf *config.Config) (repository.SettingsRepository, func() error, error) {
	switch conf.Storage.Driver {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisSettingsRepository(redisStorage.Connection), redisStorage.Close, nil
	case config.StorageSQLite:
		sqliteStorage, err := sqlite.New(ctx, conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteSettingsRepository(sqliteStorage.Connection), sqliteStorage.Close, nil
	default:
		return repository.NewMemorySettingsRepository(), func() error { return nil }, nil
	}
}
