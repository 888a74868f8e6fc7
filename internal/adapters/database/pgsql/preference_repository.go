package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/budgetloop/currency_service/internal/apperrors"
	"github.com/budgetloop/currency_service/internal/core/domain"
	portsrepo "github.com/budgetloop/currency_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPreferenceRepository persists the display preferences as a single
// row, replaced wholesale on save.
type PgxPreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPgxPreferenceRepository creates a Postgres-backed preference store.
func NewPgxPreferenceRepository(pool *pgxpool.Pool) portsrepo.PreferenceRepository {
	return &PgxPreferenceRepository{pool: pool}
}

// GetPreferences retrieves the stored preferences.
func (r *PgxPreferenceRepository) GetPreferences(ctx context.Context) (*domain.Preferences, error) {
	query := `
		SELECT currency_code, show_decimals
		FROM user_preferences
		WHERE id = 1;
	`

	var prefs domain.Preferences
	err := r.pool.QueryRow(ctx, query).Scan(&prefs.CurrencyCode, &prefs.ShowDecimals)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}
	return &prefs, nil
}

// SavePreferences stores the preferences.
func (r *PgxPreferenceRepository) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	query := `
		INSERT INTO user_preferences (id, currency_code, show_decimals, updated_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			currency_code = EXCLUDED.currency_code,
			show_decimals = EXCLUDED.show_decimals,
			updated_at = EXCLUDED.updated_at;
	`

	_, err := r.pool.Exec(ctx, query, prefs.CurrencyCode, prefs.ShowDecimals, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
