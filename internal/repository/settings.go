package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository remembers the last used round settings per profile.
type SettingsRepository interface {
	Get(ctx context.Context, profile string) (*entity.Settings, error)
	Save(ctx context.Context, profile string, settings *entity.Settings) error
}

type redisSettings struct {
	client *redis.Client
}

func NewRedisSettingsRepository(client *redis.Client) SettingsRepository {
	return &redisSettings{
		client: client,
	}
}

func settingsKey(profile string) string {
	return "settings:" + profile
}

func (that *redisSettings) Save(ctx context.Context, profile string, settings *entity.Settings) error {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("could not marshal settings: %w", err)
	}

	if err = that.client.Set(ctx, settingsKey(profile), settingsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set settings: %w", err)
	}

	return nil
}

func (that *redisSettings) Get(ctx context.Context, profile string) (*entity.Settings, error) {
	response, err := that.client.Get(ctx, settingsKey(profile)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSettingsNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var settings entity.Settings
	if err = json.Unmarshal([]byte(response), &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	return &settings, nil
}
