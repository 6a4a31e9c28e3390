package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"sportspulse/internal/domain"
)

type SubscriberStore struct {
	db *sqlx.DB
}

func NewSubscriberStore(db *sqlx.DB) *SubscriberStore {
	return &SubscriberStore{db: db}
}

// Add inserts the subscriber and reports whether the email was new. Existing
// addresses are left untouched.
func (s *SubscriberStore) Add(ctx context.Context, sub *domain.Subscriber) (bool, error) {
	query := `
		INSERT INTO newsletter_subscribers (email)
		VALUES ($1)
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at`

	row := s.db.QueryRowxContext(ctx, query, sub.Email)
	err := row.Scan(&sub.ID, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SubscriberStore) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
		SELECT id, email, created_at
		FROM newsletter_subscribers
		ORDER BY created_at DESC, id DESC`

	var subs []domain.Subscriber
	if err := s.db.SelectContext(ctx, &subs, query); err != nil {
		return nil, err
	}
	return subs, nil
}
