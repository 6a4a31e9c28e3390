package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"sportspulse/internal/domain"
)

// Whitespace covers the Unicode separators and BOM as well as ASCII space.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

type NewsletterService struct {
	store  SubscriberStore
	logger *slog.Logger
}

func NewNewsletterService(store SubscriberStore, logger *slog.Logger) *NewsletterService {
	return &NewsletterService{
		store:  store,
		logger: logger.With("component", "newsletter"),
	}
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return domain.ErrInvalidEmail
	}
	return nil
}

// Subscribe registers an address. It reports false when the address was
// already subscribed.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		return false, err
	}

	created, err := s.store.Add(ctx, &domain.Subscriber{Email: strings.ToLower(email)})
	if err != nil {
		return false, fmt.Errorf("add subscriber: %w", err)
	}

	if created {
		s.logger.Info("newsletter subscription added")
	}
	return created, nil
}

// Subscribers lists every subscriber, newest first.
func (s *NewsletterService) Subscribers(ctx context.Context) ([]domain.Subscriber, error) {
	subs, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}
