package inmemory

import (
	"context"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

type settingsRepositoryImpl struct {
	store *settingsInmemoryStore
}

// NewSettingsRepositoryImpl returns a new inmemory SettingsRepository
// implementation.
func NewSettingsRepositoryImpl(store *settingsInmemoryStore) domain.SettingsRepository {
	return &settingsRepositoryImpl{store}
}

func (r settingsRepositoryImpl) GetSettings(
	_ context.Context,
) (*domain.Settings, error) {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	settings := r.store.settings
	return &settings, nil
}

func (r settingsRepositoryImpl) UpdateSettings(
	_ context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	r.store.locker.Lock()
	defer r.store.locker.Unlock()

	currentSettings := r.store.settings
	updatedSettings, err := updateFn(&currentSettings)
	if err != nil {
		return err
	}

	r.store.settings = *updatedSettings
	return nil
}
