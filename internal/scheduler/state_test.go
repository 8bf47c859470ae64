package scheduler_test

import (
	"testing"

	"github.com/offerwatch/offerwatch/internal/scheduler"
)

func TestValidateStateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    scheduler.State
		to      scheduler.State
		wantErr bool
	}{
		{"arm from idle", scheduler.StateIdle, scheduler.StateArmed, false},
		{"re-arm while armed", scheduler.StateArmed, scheduler.StateArmed, false},
		{"cancel while armed", scheduler.StateArmed, scheduler.StateIdle, false},
		{"wake while armed", scheduler.StateArmed, scheduler.StateFiring, false},
		{"re-arm after cycle", scheduler.StateFiring, scheduler.StateArmed, false},
		{"disarm after cycle", scheduler.StateFiring, scheduler.StateIdle, false},
		{"wake while idle", scheduler.StateIdle, scheduler.StateFiring, true},
		{"wake while firing", scheduler.StateFiring, scheduler.StateFiring, true},
		{"idle to idle", scheduler.StateIdle, scheduler.StateIdle, true},
		{"unknown source", scheduler.State("bogus"), scheduler.StateArmed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scheduler.ValidateStateTransition(tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStateTransition(%s, %s) error = %v, wantErr %v", tt.from, tt.to, err, tt.wantErr)
			}
		})
	}
}
