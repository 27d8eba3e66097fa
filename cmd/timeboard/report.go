package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/tgienger/timeboard/internal/format"
	"github.com/tgienger/timeboard/internal/models"
	"github.com/tgienger/timeboard/internal/ranges"
)

// reportRange maps a --report argument to a range ending at now
func reportRange(name string, now time.Time) (models.DateRange, error) {
	switch strings.ToLower(name) {
	case "today":
		return ranges.Today(now), nil
	case "7d", "week":
		return ranges.Last7Days(now), nil
	case "month":
		return ranges.CurrentMonth(now), nil
	}
	return models.DateRange{}, fmt.Errorf("unknown report range %q (want today, 7d or month)", name)
}

// writeReport prints per-activity and per-category totals for stats
func writeReport(w io.Writer, stats *models.Stats, name func(id string) string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s (%s - %s)\n", stats.Range.Label,
		stats.Range.Start.Format("Jan 2 15:04"), stats.Range.End.Format("Jan 2 15:04"))
	if len(stats.Activities) == 0 {
		fmt.Fprintln(tw, "Nothing tracked.")
		return tw.Flush()
	}

	fmt.Fprintln(tw)
	for _, a := range stats.Activities {
		fmt.Fprintf(tw, "%s\t%s\t%d%%\n", name(a.ActivityID), format.Duration(a.Duration), percent(a.Duration, stats.Total))
	}

	fmt.Fprintln(tw)
	for _, c := range stats.Categories {
		fmt.Fprintf(tw, "[%s]\t%s\t%d%%\n", c.Category, format.Duration(c.Duration), percent(c.Duration, stats.Total))
	}

	fmt.Fprintf(tw, "\nTotal\t%s\t\n", format.Duration(stats.Total))
	return tw.Flush()
}

func percent(d, total time.Duration) int {
	if total <= 0 {
		return 0
	}
	return int((d*100 + total/2) / total)
}
