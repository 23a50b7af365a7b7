package dbbadger

import (
	"context"

	"github.com/timshannon/badgerhold/v4"

	"github.com/nftmarket/nftmarket-daemon/internal/core/domain"
)

type settingsRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSettingsRepositoryImpl returns a new badger SettingsRepository
// implementation. The settings record is seeded by the repo manager when the
// store is first opened.
func NewSettingsRepositoryImpl(store *badgerhold.Store) domain.SettingsRepository {
	return settingsRepositoryImpl{store}
}

func (r settingsRepositoryImpl) GetSettings(
	_ context.Context,
) (*domain.Settings, error) {
	var settings domain.Settings
	if err := r.store.Get(settingsKey, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r settingsRepositoryImpl) UpdateSettings(
	ctx context.Context,
	updateFn func(s *domain.Settings) (*domain.Settings, error),
) error {
	currentSettings, err := r.GetSettings(ctx)
	if err != nil {
		return err
	}

	updatedSettings, err := updateFn(currentSettings)
	if err != nil {
		return err
	}

	return r.store.Update(settingsKey, *updatedSettings)
}
