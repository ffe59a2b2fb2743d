package driving

import "github.com/custodia-labs/poolcalc/internal/core/domain"

// SettingsService manages calculator defaults.
type SettingsService interface {
	// Get retrieves current settings, falling back to defaults per key.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// Set updates a single setting by key, e.g. "pooling.scaling_factor".
	Set(key, value string) error

	// Reset restores every setting to its default.
	Reset() error

	// Values returns the current value of every key, formatted for display.
	// Unset optional keys map to "".
	Values() (map[string]string, error)

	// Keys returns every settable key in display order.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
