package engine

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/ranges"
)

// DefaultCategory is used for uncategorized activities and for sessions whose
// activity no longer exists
const DefaultCategory = "Other"

// comparisonLimit caps how many activities TodayComparison reports
const comparisonLimit = 3

// AggregateStats totals the time spent per activity and per category within r.
//
// Only sessions that started at or after r.Start are considered. A session
// that began before the range and runs into it contributes nothing. This
// undercounts the first session of a range but keeps the query on the start
// index; changing it would shift every historical total.
func (e *Engine) AggregateStats(r models.DateRange) (*models.Stats, error) {
	now := e.clock.Now()

	sessions, err := e.store.ListSessionsSince(r.Start)
	if err != nil {
		return nil, fmt.Errorf("list sessions since %s: %w", r.Start.Format(time.RFC3339), err)
	}

	activities, err := e.store.ListActivities()
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	categoryOf := make(map[string]string, len(activities))
	for _, a := range activities {
		if a.Category != "" {
			categoryOf[a.ID] = a.Category
		}
	}

	byActivity := map[string]time.Duration{}
	byCategory := map[string]time.Duration{}
	stats := &models.Stats{Range: r}

	for _, s := range sessions {
		d := overlap(s.Start, effectiveEnd(s, now), r.Start, r.End)
		if d <= 0 {
			continue
		}

		category, ok := categoryOf[s.ActivityID]
		if !ok {
			category = DefaultCategory
		}

		byActivity[s.ActivityID] += d
		byCategory[category] += d
		stats.Total += d
		stats.Sessions = append(stats.Sessions, s)
	}

	for id, d := range byActivity {
		stats.Activities = append(stats.Activities, models.ActivityTotal{ActivityID: id, Duration: d})
	}
	slices.SortFunc(stats.Activities, func(a, b models.ActivityTotal) int {
		return cmp.Or(cmp.Compare(b.Duration, a.Duration), cmp.Compare(a.ActivityID, b.ActivityID))
	})

	for c, d := range byCategory {
		stats.Categories = append(stats.Categories, models.CategoryTotal{Category: c, Duration: d})
	}
	slices.SortFunc(stats.Categories, func(a, b models.CategoryTotal) int {
		return cmp.Or(cmp.Compare(b.Duration, a.Duration), cmp.Compare(a.Category, b.Category))
	})

	slices.SortStableFunc(stats.Sessions, func(a, b models.Session) int {
		return b.Start.Compare(a.Start)
	})

	return stats, nil
}

// TodayComparison compares today's top activities against their flat daily
// average over the last 7 calendar days. Nil if nothing was tracked today.
func (e *Engine) TodayComparison() ([]models.Comparison, error) {
	now := e.clock.Now()

	today, err := e.AggregateStats(ranges.Today(now))
	if err != nil {
		return nil, err
	}
	if len(today.Activities) == 0 {
		return nil, nil
	}

	week, err := e.AggregateStats(ranges.Last7Days(now))
	if err != nil {
		return nil, err
	}
	weekTotals := make(map[string]time.Duration, len(week.Activities))
	for _, a := range week.Activities {
		weekTotals[a.ActivityID] = a.Duration
	}

	top := today.Activities[:min(comparisonLimit, len(today.Activities))]
	result := make([]models.Comparison, 0, len(top))
	for _, a := range top {
		avg := weekTotals[a.ActivityID] / 7
		result = append(result, models.Comparison{
			ActivityID: a.ActivityID,
			Today:      a.Duration,
			Avg:        avg,
			Diff:       a.Duration - avg,
		})
	}
	return result, nil
}

// overlap returns the length of [aStart, aEnd] ∩ [bStart, bEnd], or zero
func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}
