package username

import (
	"testing"
	"time"
)

func daysAgo(now time.Time, d int) *time.Time {
	t := now.Add(-time.Duration(d) * 24 * time.Hour)
	return &t
}

func TestCanChange(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		current    string
		requested  string
		lastChange *time.Time
		taken      bool
		allowed    bool
		wantReason string
		wantLeft   int
	}{
		{
			name:      "no history and free name",
			current:   "Pineapple",
			requested: "Mango",
			allowed:   true,
		},
		{
			name:       "same username is its own status",
			current:    "Pineapple",
			requested:  "Pineapple",
			wantReason: ReasonSameUsername,
		},
		{
			name:       "changed 10 days ago",
			current:    "Pineapple",
			requested:  "Mango",
			lastChange: daysAgo(now, 10),
			wantReason: ReasonUnavailable,
			wantLeft:   20,
		},
		{
			name:       "changed 29 days ago",
			current:    "Pineapple",
			requested:  "Mango",
			lastChange: daysAgo(now, 29),
			wantReason: ReasonUnavailable,
			wantLeft:   1,
		},
		{
			name:       "changed exactly 30 days ago",
			current:    "Pineapple",
			requested:  "Mango",
			lastChange: daysAgo(now, 30),
			allowed:    true,
		},
		{
			name:       "name taken past cooldown still reports left",
			current:    "Pineapple",
			requested:  "Mango",
			lastChange: daysAgo(now, 45),
			taken:      true,
			wantReason: ReasonUnavailable,
			wantLeft:   -15,
		},
		{
			name:       "name taken with no history",
			current:    "Pineapple",
			requested:  "Mango",
			taken:      true,
			wantReason: ReasonUnavailable,
			wantLeft:   -1,
		},
		{
			name:       "clock skew takes absolute distance",
			current:    "Pineapple",
			requested:  "Mango",
			lastChange: daysAgo(now, -5),
			wantReason: ReasonUnavailable,
			wantLeft:   25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanChange(tt.current, tt.requested, tt.lastChange, tt.taken, now)
			if d.Allowed != tt.allowed {
				t.Fatalf("Allowed = %v, want %v (reason %q)", d.Allowed, tt.allowed, d.Reason)
			}
			if tt.allowed {
				return
			}
			if d.Reason != tt.wantReason {
				t.Fatalf("Reason = %q, want %q", d.Reason, tt.wantReason)
			}
			if d.Reason == ReasonUnavailable && d.DaysLeft != tt.wantLeft {
				t.Fatalf("DaysLeft = %d, want %d", d.DaysLeft, tt.wantLeft)
			}
		})
	}
}
