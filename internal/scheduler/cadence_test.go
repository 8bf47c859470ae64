package scheduler_test

import (
	"testing"
	"time"

	"github.com/offerwatch/offerwatch/internal/scheduler"
)

func TestNextWeeklyCheck(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek rolls to next monday",
			now:  time.Date(2026, time.January, 7, 15, 30, 0, 0, berlin), // Wednesday
			want: time.Date(2026, time.January, 12, 9, 0, 0, 0, berlin),
		},
		{
			name: "monday before nine fires same day",
			now:  time.Date(2026, time.January, 12, 7, 0, 0, 0, berlin),
			want: time.Date(2026, time.January, 12, 9, 0, 0, 0, berlin),
		},
		{
			name: "monday exactly at nine rolls a full week",
			now:  time.Date(2026, time.January, 12, 9, 0, 0, 0, berlin),
			want: time.Date(2026, time.January, 19, 9, 0, 0, 0, berlin),
		},
		{
			name: "monday after nine rolls a full week",
			now:  time.Date(2026, time.January, 12, 9, 0, 1, 0, berlin),
			want: time.Date(2026, time.January, 19, 9, 0, 0, 0, berlin),
		},
		{
			name: "sunday evening fires next morning",
			now:  time.Date(2026, time.January, 11, 22, 0, 0, 0, berlin),
			want: time.Date(2026, time.January, 12, 9, 0, 0, 0, berlin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scheduler.NextWeeklyCheck(tt.now, time.Monday, 9)
			if !got.Equal(tt.want) {
				t.Errorf("NextWeeklyCheck(%v) = %v, want %v", tt.now, got, tt.want)
			}
			if !got.After(tt.now) {
				t.Errorf("NextWeeklyCheck(%v) = %v, not strictly after now", tt.now, got)
			}
		})
	}
}

func TestNextWeeklyCheck_KeepsLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	now := time.Date(2026, time.March, 25, 12, 0, 0, 0, berlin) // Wednesday before DST switch
	got := scheduler.NextWeeklyCheck(now, time.Monday, 9)

	want := time.Date(2026, time.March, 30, 9, 0, 0, 0, berlin) // Monday after switch
	if !got.Equal(want) {
		t.Errorf("NextWeeklyCheck across DST = %v, want %v", got, want)
	}
	if got.Hour() != 9 {
		t.Errorf("fire hour = %d, want 9 (wall clock, not elapsed duration)", got.Hour())
	}
}

func TestNextWeeklyCheck_StrictlyIncreasingAcrossCycles(t *testing.T) {
	now := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC) // Monday 09:00
	first := scheduler.NextWeeklyCheck(now, time.Monday, 9)
	second := scheduler.NextWeeklyCheck(first, time.Monday, 9)

	if !first.After(now) || !second.After(first) {
		t.Errorf("fire times must be strictly increasing: %v, %v, %v", now, first, second)
	}
	if second.Sub(first) != 7*24*time.Hour {
		t.Errorf("consecutive UTC fire times %v apart, want 168h", second.Sub(first))
	}
}
