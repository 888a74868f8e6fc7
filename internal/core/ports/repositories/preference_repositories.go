package repositories

import (
	"context"

	"github.com/budgetloop/currency_service/internal/core/domain"
)

// PreferenceRepository persists the user's display preferences.
type PreferenceRepository interface {
	// GetPreferences retrieves the stored preferences.
	// Returns apperrors.ErrNotFound when nothing has been saved yet.
	GetPreferences(ctx context.Context) (*domain.Preferences, error)

	// SavePreferences stores the preferences, replacing any previous value.
	SavePreferences(ctx context.Context, prefs domain.Preferences) error
}
