package format

import (
	"fmt"
	"time"
)

// Duration renders d as "1h 23m", "45m" or "12s". Values are truncated, never rounded.
func Duration(d time.Duration) string {
	sign := ""
	magnitude := uint64(d)
	if d < 0 {
		sign = "-"
		// two's complement negation keeps math.MinInt64 in range
		magnitude = ^uint64(d) + 1
	}

	seconds := magnitude / uint64(time.Second)
	minutes := seconds / 60
	hours := minutes / 60

	if hours > 0 {
		return fmt.Sprintf("%s%dh %dm", sign, hours, minutes%60)
	}
	if minutes > 0 {
		return fmt.Sprintf("%s%dm", sign, minutes)
	}
	return fmt.Sprintf("%s%ds", sign, seconds)
}

// DurationDetailed renders d as "H:MM:SS", or "M:SS" under an hour
func DurationDetailed(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Clock renders the time of day, e.g. "09:05"
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// Date renders a short calendar date, e.g. "Jan 2"
func Date(t time.Time) string {
	return t.Format("Jan 2")
}
