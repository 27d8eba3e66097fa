package ranges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRanges(t *testing.T) {
	now := time.Date(2026, time.October, 3, 14, 30, 15, 500, time.Local)

	t.Run("today starts at local midnight", func(t *testing.T) {
		r := Today(now)
		assert.Equal(t, "Today", r.Label)
		assert.Equal(t, time.Date(2026, time.October, 3, 0, 0, 0, 0, time.Local), r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("7D spans seven calendar days including today", func(t *testing.T) {
		r := Last7Days(now)
		assert.Equal(t, "7D", r.Label)
		assert.Equal(t, time.Date(2026, time.September, 27, 0, 0, 0, 0, time.Local), r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("month starts on the first", func(t *testing.T) {
		r := CurrentMonth(now)
		assert.Equal(t, "Month", r.Label)
		assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local), r.Start)
		assert.Equal(t, now, r.End)
	})

	t.Run("all in picker order", func(t *testing.T) {
		all := All(now)
		if assert.Len(t, all, 3) {
			assert.Equal(t, []string{"Today", "7D", "Month"}, []string{all[0].Label, all[1].Label, all[2].Label})
		}
	})

	t.Run("by label", func(t *testing.T) {
		assert.Equal(t, Last7Days(now), ByLabel("7D", now))
		assert.Equal(t, CurrentMonth(now), ByLabel("Month", now))
		assert.Equal(t, Today(now), ByLabel("bogus", now))
	})
}

func TestStartOfDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	ts := time.Date(2026, time.January, 1, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, loc), StartOfDay(ts))
}
