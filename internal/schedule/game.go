package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Unassigned is the team name used before a slot has real teams.
const Unassigned = "TBD"

const (
	dateLayout  = "2006-Mon, Jan 2 15:04"
	dayLayout   = "2006-01-02"
	clockLayout = "15:04"
)

// Record holds one schedule row as exported, before any parsing.
type Record struct {
	Row      int
	Division string
	Away     string
	Home     string
	Date     string // "Sat, Feb 14"
	Start    string // "09:30"
	Stop     string // "11:30"
	Field    string
}

// Game is a single scheduled match.
type Game struct {
	Row      int
	Division string
	Away     string
	Home     string
	Field    string
	Duration Duration

	// Managers are lower-cased; empty when the team is Unassigned.
	HomeManager string
	AwayManager string
}

// NewGame parses a record. Dates carry no year, so year supplies it.
func NewGame(rec Record, year int) (*Game, error) {
	start, err := parseTime(rec, year, rec.Start)
	if err != nil {
		return nil, err
	}
	stop, err := parseTime(rec, year, rec.Stop)
	if err != nil {
		return nil, err
	}
	if stop.Before(start) {
		return nil, &FormatError{
			Row:   rec.Row,
			Value: rec.Start + "-" + rec.Stop,
			Err:   fmt.Errorf("game ends before it starts"),
		}
	}

	g := &Game{
		Row:      rec.Row,
		Division: rec.Division,
		Away:     rec.Away,
		Home:     rec.Home,
		Field:    rec.Field,
		Duration: Duration{Start: start, Stop: stop},
	}
	if g.HomeManager, err = manager(rec.Division, rec.Home); err != nil {
		return nil, &FormatError{Row: rec.Row, Value: rec.Home, Err: err}
	}
	if g.AwayManager, err = manager(rec.Division, rec.Away); err != nil {
		return nil, &FormatError{Row: rec.Row, Value: rec.Away, Err: err}
	}
	return g, nil
}

// Schedules give wall-clock times, so they are kept in UTC to avoid any
// daylight saving shifts.
func parseTime(rec Record, year int, clock string) (time.Time, error) {
	text := fmt.Sprintf("%d-%s %s", year, strings.TrimSpace(rec.Date), strings.TrimSpace(clock))
	t, err := time.ParseInLocation(dateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, &FormatError{
			Row:   rec.Row,
			Value: rec.Date + " " + clock,
			Err:   fmt.Errorf("expected date like \"Sat, Feb 14\" and time like \"09:30\""),
		}
	}
	return t, nil
}

// manager derives the manager from a team name such as "Washington-Majors"
// or "Majors - Jefferson": whichever side is not the division.
func manager(division, team string) (string, error) {
	if team == Unassigned {
		return "", nil
	}
	parts := strings.Split(team, "-")
	if len(parts) != 2 {
		return "", fmt.Errorf("team %q is not of the form \"division - manager\"", team)
	}
	first := strings.ToLower(strings.TrimSpace(parts[0]))
	second := strings.ToLower(strings.TrimSpace(parts[1]))
	if strings.HasPrefix(first, strings.ToLower(division)) {
		return second, nil
	}
	return first, nil
}

// Managers returns the game's assigned managers, home first.
func (g *Game) Managers() []string {
	var mgrs []string
	if g.HomeManager != "" {
		mgrs = append(mgrs, g.HomeManager)
	}
	if g.AwayManager != "" {
		mgrs = append(mgrs, g.AwayManager)
	}
	return mgrs
}

// WeekAndDay returns the ISO week number and the weekday index,
// 0 for Monday through 6 for Sunday.
func (g *Game) WeekAndDay() (week, day int) {
	_, week = g.Duration.Start.ISOWeek()
	return week, weekdayIndex(g.Duration.Start)
}

// Weekday returns the weekday index of the game's start, 0 for Monday.
func (g *Game) Weekday() int {
	return weekdayIndex(g.Duration.Start)
}

func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// ID identifies the game in diagnostics.
func (g *Game) ID() string {
	return fmt.Sprintf("%s/%s/%s", g.Field, g.Duration.Ident(), g.Division)
}

// DateStr returns the game date as YYYY-MM-DD.
func (g *Game) DateStr() string {
	return g.Duration.Start.Format(dayLayout)
}

// TimeStr returns the start time as HH:MM.
func (g *Game) TimeStr() string {
	return g.Duration.Start.Format(clockLayout)
}

func (g *Game) String() string {
	return fmt.Sprintf("%s %s@%s", g.Duration.Ident(), g.Away, g.Home)
}
