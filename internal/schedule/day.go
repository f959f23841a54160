package schedule

import (
	"sort"
)

// Day holds every game on one calendar date, bucketed by field.
type Day struct {
	Date   string
	Fields []string

	games map[string][]*Game
}

// NewDay creates an empty day showing the given fields, in order.
func NewDay(date string, fields []string) *Day {
	d := &Day{
		Date:   date,
		Fields: append([]string(nil), fields...),
		games:  make(map[string][]*Game),
	}
	for _, f := range fields {
		d.games[f] = nil
	}
	return d
}

// AddGame appends g to its field. A field not yet shown gets a new column.
func (d *Day) AddGame(g *Game) {
	if _, ok := d.games[g.Field]; !ok {
		d.Fields = append(d.Fields, g.Field)
	}
	d.games[g.Field] = append(d.games[g.Field], g)
}

// Rows returns the number of rows needed to show the busiest field.
func (d *Day) Rows() int {
	rows := 0
	for _, games := range d.games {
		if len(games) > rows {
			rows = len(games)
		}
	}
	return rows
}

// GameAt returns the index'th game on field, or nil if there is none.
func (d *Day) GameAt(field string, index int) *Game {
	games := d.games[field]
	if index < 0 || index >= len(games) {
		return nil
	}
	return games[index]
}

// GroupByDay buckets games by date. Every day lists all fields used anywhere
// in the schedule, sorted, and each field's games are in start order.
func GroupByDay(games []*Game) []*Day {
	sorted := SortByStart(games)

	fieldSet := make(map[string]bool)
	for _, g := range sorted {
		fieldSet[g.Field] = true
	}
	fields := sortedKeys(fieldSet)

	days := make(map[string]*Day)
	for _, g := range sorted {
		date := g.DateStr()
		if days[date] == nil {
			days[date] = NewDay(date, fields)
		}
		days[date].AddGame(g)
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	result := make([]*Day, len(dates))
	for i, date := range dates {
		result[i] = days[date]
	}
	return result
}

// SortByStart returns a copy of games ordered by start time. Games starting
// together keep their input order.
func SortByStart(games []*Game) []*Game {
	sorted := append([]*Game(nil), games...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Duration.Start.Before(sorted[j].Duration.Start)
	})
	return sorted
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
