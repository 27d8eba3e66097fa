package engine

import (
	"time"

	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/ranges"
)

// DayGroup is the sessions that started on one calendar day
type DayGroup struct {
	Day      time.Time // local midnight
	Sessions []models.Session
}

// GroupByDay buckets sessions by the local date they started on. Groups and
// the sessions inside them keep the order of the input.
func GroupByDay(sessions []models.Session) []DayGroup {
	var groups []DayGroup
	index := map[time.Time]int{}

	for _, s := range sessions {
		day := ranges.StartOfDay(s.Start)
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, DayGroup{Day: day})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	return groups
}

// Segment is a session's position within a 24h strip, as fractions of the day
type Segment struct {
	ActivityID string
	From       float64
	To         float64
}

// DayStrip clips sessions to the 00:00-24:00 window of day. Sessions outside
// the window are dropped. Open sessions run until now.
func DayStrip(sessions []models.Session, day, now time.Time) []Segment {
	start := ranges.StartOfDay(day)
	end := start.AddDate(0, 0, 1)
	length := float64(end.Sub(start))

	var segments []Segment
	for _, s := range sessions {
		from := s.Start
		if from.Before(start) {
			from = start
		}
		to := effectiveEnd(s, now)
		if to.After(end) {
			to = end
		}
		if !to.After(from) {
			continue
		}
		segments = append(segments, Segment{
			ActivityID: s.ActivityID,
			From:       float64(from.Sub(start)) / length,
			To:         float64(to.Sub(start)) / length,
		})
	}
	return segments
}
