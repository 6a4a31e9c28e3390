package domain

import "fmt"

type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchLive      MatchStatus = "live"
	MatchFinished  MatchStatus = "finished"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchScheduled, MatchLive, MatchFinished:
		return true
	}
	return false
}

type Match struct {
	ID          string      `json:"id"`
	Home        string      `json:"home"`
	Away        string      `json:"away"`
	HomeScore   int         `json:"home_score"`
	AwayScore   int         `json:"away_score"`
	Status      MatchStatus `json:"status"`
	Minute      int         `json:"minute"`
	Competition string      `json:"competition"`
}

// MatchPatch carries the fields of a merge update. Nil fields are left untouched.
type MatchPatch struct {
	Home        *string      `json:"home,omitempty"`
	Away        *string      `json:"away,omitempty"`
	HomeScore   *int         `json:"home_score,omitempty"`
	AwayScore   *int         `json:"away_score,omitempty"`
	Status      *MatchStatus `json:"status,omitempty"`
	Minute      *int         `json:"minute,omitempty"`
	Competition *string      `json:"competition,omitempty"`
}

func (p MatchPatch) Validate() error {
	if p.HomeScore != nil && *p.HomeScore < 0 {
		return fmt.Errorf("%w: home_score must be non-negative", ErrInvalidPatch)
	}
	if p.AwayScore != nil && *p.AwayScore < 0 {
		return fmt.Errorf("%w: away_score must be non-negative", ErrInvalidPatch)
	}
	if p.Minute != nil && *p.Minute < 0 {
		return fmt.Errorf("%w: minute must be non-negative", ErrInvalidPatch)
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPatch, *p.Status)
	}
	return nil
}

// Apply overlays the supplied fields onto m. The ID is never changed.
func (m *Match) Apply(p MatchPatch) {
	if p.Home != nil {
		m.Home = *p.Home
	}
	if p.Away != nil {
		m.Away = *p.Away
	}
	if p.HomeScore != nil {
		m.HomeScore = *p.HomeScore
	}
	if p.AwayScore != nil {
		m.AwayScore = *p.AwayScore
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Minute != nil {
		m.Minute = *p.Minute
	}
	if p.Competition != nil {
		m.Competition = *p.Competition
	}
}

func (m Match) IsLive() bool {
	return m.Status == MatchLive
}
