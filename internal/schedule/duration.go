package schedule

import "time"

const identLayout = "2006-01-02T15:04:05"

// Duration is the closed time range a game occupies.
type Duration struct {
	Start time.Time
	Stop  time.Time
}

// Overlaps reports whether d and other intersect once both are widened by
// tolerance at each end. Touching boundaries count as overlapping.
func (d Duration) Overlaps(other Duration, tolerance time.Duration) bool {
	return !d.Start.Add(-tolerance).After(other.Stop) &&
		!d.Stop.Add(tolerance).Before(other.Start)
}

// Ident returns the start time in ISO-8601 form.
func (d Duration) Ident() string {
	return d.Start.Format(identLayout)
}
