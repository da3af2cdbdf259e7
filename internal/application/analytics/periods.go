package analytics

import (
	"fmt"
	"time"

	"github.com/turtacn/LegalSpend-Research/pkg/types/research"
)

// period is one trend bucket boundary.
type period struct {
	label string
	start time.Time
}

// periodsBetween lists every period of width g that intersects
// [start, end], oldest first.
func periodsBetween(start, end research.Date, g research.Granularity) []period {
	var out []period
	for t := periodStart(start.Time, g); !t.After(end.Time); t = nextPeriod(t, g) {
		out = append(out, period{label: periodLabel(t, g), start: t})
	}
	return out
}

// periodStart is the Monday of t's week or the first of t's month.
func periodStart(t time.Time, g research.Granularity) time.Time {
	if g == research.GranularityWeek {
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func nextPeriod(t time.Time, g research.Granularity) time.Time {
	if g == research.GranularityWeek {
		return t.AddDate(0, 0, 7)
	}
	return t.AddDate(0, 1, 0)
}

// periodLabel renders ISO weeks as 2024-W09 and months as 2024-03.
func periodLabel(t time.Time, g research.Granularity) string {
	if g == research.GranularityWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format("2006-01")
}

// labelOf is the label of the period containing d.
func labelOf(d research.Date, g research.Granularity) string {
	return periodLabel(periodStart(d.Time, g), g)
}
