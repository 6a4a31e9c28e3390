package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"sportspulse/internal/domain"
)

const EventScoreUpdate = "score_update"

// Rand decides which live matches change on a tick. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

type LiveScoreService struct {
	matches           MatchRegistry
	publisher         Publisher
	broadcaster       Broadcaster
	rnd               Rand
	updateProbability float64
	logger            *slog.Logger
}

// NewLiveScoreService builds the service. On each tick every live match is
// simulated with probability updateProbability; 1 or more simulates all of
// them.
func NewLiveScoreService(
	matches MatchRegistry,
	publisher Publisher,
	broadcaster Broadcaster,
	rnd Rand,
	updateProbability float64,
	logger *slog.Logger,
) *LiveScoreService {
	return &LiveScoreService{
		matches:           matches,
		publisher:         publisher,
		broadcaster:       broadcaster,
		rnd:               rnd,
		updateProbability: updateProbability,
		logger:            logger.With("component", "live_scores"),
	}
}

// Simulate advances one live match and fans the new score out. The match
// error is returned as is so callers can tell not-found from not-live.
func (s *LiveScoreService) Simulate(ctx context.Context, id string) (domain.Match, error) {
	match, _, err := s.simulate(ctx, id)
	return match, err
}

func (s *LiveScoreService) simulate(ctx context.Context, id string) (domain.Match, bool, error) {
	match, err := s.matches.SimulateScoreUpdate(id)
	if err != nil {
		return domain.Match{}, false, err
	}

	s.logger.Info("score updated",
		"match_id", match.ID,
		"home_score", match.HomeScore,
		"away_score", match.AwayScore,
		"minute", match.Minute,
	)

	return match, s.announce(ctx, match), nil
}

// Update applies a manual merge update and announces the result like a
// simulated one.
func (s *LiveScoreService) Update(ctx context.Context, id string, patch domain.MatchPatch) (domain.Match, error) {
	if err := patch.Validate(); err != nil {
		return domain.Match{}, err
	}

	match, err := s.matches.Update(id, patch)
	if err != nil {
		return domain.Match{}, err
	}

	s.logger.Info("match updated",
		"match_id", match.ID,
		"status", match.Status,
		"home_score", match.HomeScore,
		"away_score", match.AwayScore,
		"minute", match.Minute,
	)

	s.announce(ctx, match)
	return match, nil
}

// Tick gives every match that is live when the tick starts one draw, and
// simulates the ones that win it. Not safe for concurrent use.
func (s *LiveScoreService) Tick(ctx context.Context) (*domain.TickStats, error) {
	startTime := time.Now()

	live := s.matches.Live()
	stats := &domain.TickStats{Live: len(live)}

	for _, m := range live {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if !s.shouldUpdate() {
			stats.Skipped++
			continue
		}

		_, published, err := s.simulate(ctx, m.ID)
		if err != nil {
			// The match may have finished between Live and Simulate.
			if errors.Is(err, domain.ErrMatchNotLive) || errors.Is(err, domain.ErrMatchNotFound) {
				continue
			}
			s.logger.Error("simulate match", "match_id", m.ID, "error", err)
			stats.Errors++
			continue
		}

		stats.Updated++
		if published {
			stats.Published++
		}
	}

	stats.Duration = time.Since(startTime)

	s.logger.Debug("tick completed",
		"live", stats.Live,
		"updated", stats.Updated,
		"skipped", stats.Skipped,
		"published", stats.Published,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *LiveScoreService) shouldUpdate() bool {
	if s.updateProbability >= 1 {
		return true
	}
	return s.rnd.Float64() < s.updateProbability
}

// announce broadcasts the match and publishes it. It reports whether the
// publish succeeded; failures are logged and never undo the change.
func (s *LiveScoreService) announce(ctx context.Context, match domain.Match) bool {
	if s.broadcaster != nil {
		s.broadcaster.Broadcast(EventScoreUpdate, match)
	}

	if s.publisher == nil {
		return false
	}
	if err := s.publisher.PublishMatch(ctx, &match); err != nil {
		s.logger.Error("publish score update", "match_id", match.ID, "error", fmt.Errorf("publish match: %w", err))
		return false
	}
	return true
}
