package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0s"},
		{"seconds", 45 * time.Second, "45s"},
		{"sub-second truncated", 999 * time.Millisecond, "0s"},
		{"minutes drop seconds", 90 * time.Second, "1m"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "59m"},
		{"hours and minutes", 3661 * time.Second, "1h 1m"},
		{"exact hours", 2 * time.Hour, "2h 0m"},
		{"many hours", 25*time.Hour + 30*time.Minute, "25h 30m"},
		{"negative", -90 * time.Second, "-1m"},
		{"negative hours", -(2*time.Hour + 5*time.Minute), "-2h 5m"},
		{"most negative", time.Duration(math.MinInt64), "-2562047h 47m"},
		{"most positive", time.Duration(math.MaxInt64), "2562047h 47m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.in))
		})
	}
}

func TestDurationDetailed(t *testing.T) {
	assert.Equal(t, "0:00", DurationDetailed(0))
	assert.Equal(t, "0:45", DurationDetailed(45*time.Second))
	assert.Equal(t, "12:05", DurationDetailed(12*time.Minute+5*time.Second+900*time.Millisecond))
	assert.Equal(t, "1:01:01", DurationDetailed(3661*time.Second))
	assert.Equal(t, "0:00", DurationDetailed(-time.Minute))
}

func TestClockAndDate(t *testing.T) {
	ts := time.Date(2026, time.March, 4, 9, 5, 0, 0, time.Local)
	assert.Equal(t, "09:05", Clock(ts))
	assert.Equal(t, "Mar 4", Date(ts))
}
