package domain

import "context"

// SettingsRepository is the abstraction for any kind of database intended to
// persist the process-wide marketplace settings.
type SettingsRepository interface {
	// GetSettings returns the current marketplace settings.
	GetSettings(ctx context.Context) (*Settings, error)
	// UpdateSettings allows to commit multiple changes to the settings in a
	// transactional way.
	UpdateSettings(
		ctx context.Context,
		updateFn func(s *Settings) (*Settings, error),
	) error
}
