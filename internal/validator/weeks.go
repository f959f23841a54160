package validator

import (
	"sort"
	"time"

	"github.com/derekprior/schedcheck/internal/schedule"
)

// WeekCount is the number of games in one reporting period: a single
// Saturday or Sunday, or the Monday to Friday block of a week.
type WeekCount struct {
	Period schedule.Duration
	Games  int
}

// Label names the period, e.g. "Sat 02/14" or "M-F 02/09".
func (w WeekCount) Label() string {
	start := w.Period.Start
	if isWeekend(start) {
		return start.Format("Mon 01/02")
	}
	return "M-F " + start.Format("01/02")
}

// GamesByWeek counts games per weekend day and per weekday block, in date
// order. Only periods containing at least one game start are listed.
func GamesByWeek(games []*schedule.Game) []WeekCount {
	starts := make(map[time.Time]bool)
	for _, g := range games {
		start := g.Duration.Start
		if isWeekend(start) {
			starts[dayStart(start)] = true
		} else {
			starts[weekStart(start)] = true
		}
	}

	periods := make([]time.Time, 0, len(starts))
	for s := range starts {
		periods = append(periods, s)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	counts := make([]WeekCount, len(periods))
	for i, start := range periods {
		days := 5
		if isWeekend(start) {
			days = 1
		}
		period := schedule.Duration{Start: start, Stop: start.AddDate(0, 0, days)}
		n := 0
		for _, g := range games {
			if g.Duration.Overlaps(period, 0) {
				n++
			}
		}
		counts[i] = WeekCount{Period: period, Games: n}
	}
	return counts
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func weekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return dayStart(t).AddDate(0, 0, -offset)
}
