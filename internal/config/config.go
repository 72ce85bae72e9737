package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string   `yaml:"log-file" env:"LOG_FILE"`
	Profile  string   `yaml:"profile" env:"PROFILE" env-default:"default"`
	Storage  Storage  `yaml:"storage"`
	Redis    Redis    `yaml:"redis"`
	Computer Computer `yaml:"computer"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	SQLitePath string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"./tictactoe.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Computer holds the settings used until a round remembers its own.
type Computer struct {
	Active     bool   `yaml:"active" env:"COMPUTER_ACTIVE"`
	Difficulty string `yaml:"difficulty" env:"COMPUTER_DIFFICULTY" env-default:"low"`
	Mark       string `yaml:"mark" env:"COMPUTER_MARK" env-default:"O"`
	Seed       uint64 `yaml:"seed" env:"COMPUTER_SEED"`
}

// Load - reads the yaml file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Config) Validate() error {
	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, that.LogLevel)
	}

	switch that.Storage.Driver {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, that.Storage.Driver)
	}

	if that.Profile == "" {
		return fmt.Errorf("%w: empty profile", ErrInvalidConfig)
	}

	if _, err := that.Computer.Settings(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Settings converts the computer section into round settings.
func (that *Computer) Settings() (*entity.Settings, error) {
	difficulty, err := entity.ParseDifficulty(that.Difficulty)
	if err != nil {
		return nil, err
	}

	mark, err := entity.ParseMark(that.Mark)
	if err != nil {
		return nil, err
	}

	return &entity.Settings{
		ComputerActive: that.Active,
		Difficulty:     difficulty,
		ComputerMark:   mark,
	}, nil
}

func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
