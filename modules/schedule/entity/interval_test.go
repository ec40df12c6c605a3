package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func iv(startHour, endHour int) Interval {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestIntervalIsValid(t *testing.T) {
	require.True(t, iv(10, 12).IsValid())
	require.False(t, iv(12, 10).IsValid())
	require.False(t, iv(10, 10).IsValid(), "empty interval is invalid")
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", iv(10, 12), iv(10, 12), true},
		{"contained", iv(10, 14), iv(11, 12), true},
		{"partial left", iv(10, 12), iv(11, 14), true},
		{"partial right", iv(11, 14), iv(10, 12), true},
		{"back to back", iv(10, 12), iv(12, 14), false},
		{"back to back reversed", iv(12, 14), iv(10, 12), false},
		{"disjoint", iv(8, 9), iv(12, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			require.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestIntervalDuration(t *testing.T) {
	require.Equal(t, 2*time.Hour, iv(10, 12).Duration())
}
