package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"sportspulse/internal/domain"
)

type PreferenceStore struct {
	db *sqlx.DB
}

func NewPreferenceStore(db *sqlx.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

func (s *PreferenceStore) Get(ctx context.Context, clientID string) (*domain.Preference, error) {
	var pref domain.Preference
	query := `
		SELECT client_id, dark_mode, updated_at
		FROM preferences
		WHERE client_id = $1`

	err := s.db.GetContext(ctx, &pref, query, clientID)
	if errors.Is(err, sql.ErrNoRows) {
		// Unknown clients start in light mode
		return &domain.Preference{ClientID: clientID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *PreferenceStore) Upsert(ctx context.Context, pref *domain.Preference) error {
	query := `
		INSERT INTO preferences (client_id, dark_mode, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (client_id) DO UPDATE SET
			dark_mode = EXCLUDED.dark_mode,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`

	return s.db.GetContext(ctx, &pref.UpdatedAt, query,
		pref.ClientID,
		pref.DarkMode,
	)
}

// Toggle flips the flag in a single statement, so concurrent toggles for one
// client serialize on the row. A missing row starts from false.
func (s *PreferenceStore) Toggle(ctx context.Context, clientID string) (*domain.Preference, error) {
	var pref domain.Preference
	query := `
		INSERT INTO preferences (client_id, dark_mode, updated_at)
		VALUES ($1, TRUE, NOW())
		ON CONFLICT (client_id) DO UPDATE SET
			dark_mode = NOT preferences.dark_mode,
			updated_at = NOW()
		RETURNING client_id, dark_mode, updated_at`

	if err := s.db.GetContext(ctx, &pref, query, clientID); err != nil {
		return nil, err
	}
	return &pref, nil
}
