package domain

import "time"

// TickStats holds statistics about a single live score tick. Skipped counts
// live matches that sat out the tick's random draw.
type TickStats struct {
	Live      int
	Updated   int
	Skipped   int
	Published int
	Errors    int
	Duration  time.Duration
}
