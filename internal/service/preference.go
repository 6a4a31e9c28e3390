package service

import (
	"context"
	"fmt"
	"log/slog"

	"sportspulse/internal/domain"
)

type PreferenceService struct {
	store  PreferenceStore
	logger *slog.Logger
}

func NewPreferenceService(store PreferenceStore, logger *slog.Logger) *PreferenceService {
	return &PreferenceService{
		store:  store,
		logger: logger.With("component", "preferences"),
	}
}

func (s *PreferenceService) DarkMode(ctx context.Context, clientID string) (bool, error) {
	pref, err := s.store.Get(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("get preference: %w", err)
	}
	return pref.DarkMode, nil
}

// ToggleDarkMode flips the stored flag and returns the new value. The flip
// happens inside the store so concurrent toggles are never lost.
func (s *PreferenceService) ToggleDarkMode(ctx context.Context, clientID string) (bool, error) {
	pref, err := s.store.Toggle(ctx, clientID)
	if err != nil {
		return false, fmt.Errorf("toggle preference: %w", err)
	}

	s.logger.Debug("dark mode toggled", "client_id", clientID, "dark_mode", pref.DarkMode)
	return pref.DarkMode, nil
}

func (s *PreferenceService) SetDarkMode(ctx context.Context, clientID string, enabled bool) error {
	pref := &domain.Preference{ClientID: clientID, DarkMode: enabled}
	if err := s.store.Upsert(ctx, pref); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}

	s.logger.Debug("dark mode set", "client_id", clientID, "dark_mode", enabled)
	return nil
}
