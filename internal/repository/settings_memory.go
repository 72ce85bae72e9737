package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

// memorySettings keeps settings for the lifetime of the process.
type memorySettings struct {
	mu       sync.RWMutex
	profiles map[string]entity.Settings
}

func NewMemorySettingsRepository() SettingsRepository {
	return &memorySettings{
		profiles: make(map[string]entity.Settings),
	}
}

func (that *memorySettings) Save(_ context.Context, profile string, settings *entity.Settings) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.profiles[profile] = *settings

	return nil
}

func (that *memorySettings) Get(_ context.Context, profile string) (*entity.Settings, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	settings, ok := that.profiles[profile]
	if !ok {
		return nil, ErrSettingsNotFound
	}

	return &settings, nil
}
