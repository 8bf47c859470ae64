package domain

import (
	"time"
)

// Outcome classifies the result of one sync cycle. The scheduler uses it to
// decide when the next check fires.
type Outcome string

const (
	// OutcomeSuccess means at least one market resolved, even with zero matches.
	OutcomeSuccess Outcome = "success"
	// OutcomeNetworkFailure means no market could be resolved this cycle.
	OutcomeNetworkFailure Outcome = "network_failure"
	// OutcomeNoFavorites means there was nothing to check (no watched
	// products or no favorite markets).
	OutcomeNoFavorites Outcome = "no_favorites"
)

// ScheduleState is the single persisted record driving the wake scheduler.
// Absence of a persisted state means no alarm is currently armed.
type ScheduleState struct {
	NextFireAt  time.Time `json:"next_fire_at" db:"next_fire_at"`
	LastOutcome Outcome   `json:"last_outcome" db:"last_outcome"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
