package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"sportspulse/internal/domain"
)

type MatchRegistry interface {
	Live() []domain.Match
	SimulateScoreUpdate(id string) (domain.Match, error)
	Update(id string, patch domain.MatchPatch) (domain.Match, error)
}

type ArticleRegistry interface {
	Add(article domain.Article) domain.Article
}

type Publisher interface {
	PublishMatch(ctx context.Context, match *domain.Match) error
	PublishArticle(ctx context.Context, article *domain.Article) error
	Close() error
}

// Broadcaster pushes events to connected live clients.
type Broadcaster interface {
	Broadcast(eventType string, data any)
}

type PreferenceStore interface {
	Get(ctx context.Context, clientID string) (*domain.Preference, error)
	// Toggle flips the dark mode flag atomically, creating the row when absent.
	Toggle(ctx context.Context, clientID string) (*domain.Preference, error)
	Upsert(ctx context.Context, pref *domain.Preference) error
}

type SubscriberStore interface {
	Add(ctx context.Context, sub *domain.Subscriber) (bool, error)
	List(ctx context.Context) ([]domain.Subscriber, error)
}
