// Package scheduler decides when the next offer check fires and persists
// that decision across restarts.
package scheduler

import (
	"fmt"
)

// State represents a scheduler state in the state machine.
type State string

const (
	// StateIdle means no alarm is armed and nothing is persisted.
	StateIdle State = "idle"
	// StateArmed means a future fire time is persisted.
	StateArmed State = "armed"
	// StateFiring means a sync cycle is in progress. Wakes arriving while
	// firing are coalesced.
	StateFiring State = "firing"
)

// validTransitions lists the allowed state transitions.
var validTransitions = map[State][]State{
	StateIdle: {
		StateArmed, // arm
	},
	StateArmed: {
		StateArmed,  // re-arm to a new fire time
		StateIdle,   // cancel
		StateFiring, // wake
	},
	StateFiring: {
		StateArmed, // cycle done, re-armed
		StateIdle,  // cycle done, nothing left to watch
	},
}

// ValidateStateTransition checks if a state transition is valid.
// Returns an error if the transition is not allowed.
func ValidateStateTransition(from, to State) error {
	allowedStates, exists := validTransitions[from]
	if !exists {
		return fmt.Errorf("unknown source state: %s", from)
	}

	for _, allowed := range allowedStates {
		if allowed == to {
			return nil
		}
	}

	return fmt.Errorf("invalid state transition from %s to %s", from, to)
}
