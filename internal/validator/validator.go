package validator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/derekprior/schedcheck/internal/config"
	"github.com/derekprior/schedcheck/internal/schedule"
)

// Violation is a finding rendered for people. Findings never fail a run.
type Violation struct {
	Type    string // "error" or "warning"
	Rule    string // one of the Rule constants
	Message string
}

// Rules a violation can come from.
const (
	RuleCapitalization  = "capitalization"
	RuleFieldConflict   = "field_conflict"
	RuleManagerConflict = "manager_conflict"
	RuleWeeklyLimit     = "weekly_limit"
	RuleSunday          = "sunday"
)

// Conflict is a pair of games competing for the same field or manager.
// First starts no later than Second.
type Conflict struct {
	Resource string
	First    *schedule.Game
	Second   *schedule.Game
}

// Overload is a manager with too many games in one division and ISO week.
type Overload struct {
	Division string
	Manager  string
	Week     int
	Games    []*schedule.Game
}

// CaseDrift lists labels that differ only in capitalization.
type CaseDrift struct {
	Kind   string // "division", "manager" or "field"
	Labels []string
}

// Findings holds every check's results over one schedule.
type Findings struct {
	CaseDrift        []CaseDrift
	FieldConflicts   []Conflict
	ManagerConflicts []Conflict
	Overloads        []Overload
	SundayGames      []*schedule.Game
}

// Check runs every check over games.
func Check(cfg *config.Config, games []*schedule.Game) *Findings {
	return &Findings{
		CaseDrift:        checkCapitalization(games),
		FieldConflicts:   checkFieldConflicts(games),
		ManagerConflicts: checkManagerConflicts(cfg, games),
		Overloads:        checkWeeklyOverloads(cfg, games),
		SundayGames:      checkSundayGames(cfg, games),
	}
}

// OverloadedManagers returns the distinct managers with an overload, sorted.
func (f *Findings) OverloadedManagers() []string {
	set := make(map[string]bool)
	for _, o := range f.Overloads {
		set[o.Manager] = true
	}
	return sortedKeys(set)
}

// Violations flattens the findings into messages: Sunday games and case
// drift are errors, conflicts and overloads are warnings.
func (f *Findings) Violations() []Violation {
	var violations []Violation
	for _, d := range f.CaseDrift {
		violations = append(violations, Violation{
			Type:    "error",
			Rule:    RuleCapitalization,
			Message: fmt.Sprintf("Some %ss vary in capitalization: %s", d.Kind, strings.Join(d.Labels, ", ")),
		})
	}
	for _, c := range f.FieldConflicts {
		violations = append(violations, Violation{
			Type:    "warning",
			Rule:    RuleFieldConflict,
			Message: fmt.Sprintf("Game conflict: %s and %s", c.First.ID(), c.Second.ID()),
		})
	}
	for _, c := range f.ManagerConflicts {
		violations = append(violations, Violation{
			Type:    "warning",
			Rule:    RuleManagerConflict,
			Message: fmt.Sprintf("Manager conflict: %s: %s and %s", c.Resource, c.First.ID(), c.Second.ID()),
		})
	}
	for _, o := range f.Overloads {
		ids := make([]string, len(o.Games))
		for i, g := range o.Games {
			ids[i] = g.ID()
		}
		violations = append(violations, Violation{
			Type:    "warning",
			Rule:    RuleWeeklyLimit,
			Message: fmt.Sprintf("Too many games per week for %s: %s", o.Manager, strings.Join(ids, ", ")),
		})
	}
	for _, g := range f.SundayGames {
		violations = append(violations, Violation{
			Type:    "error",
			Rule:    RuleSunday,
			Message: fmt.Sprintf("Sunday game: %s", g),
		})
	}
	return violations
}

// Divisions returns the distinct divisions, sorted. Playoff divisions are
// left out since they reuse regular season teams.
func Divisions(games []*schedule.Game) []string {
	set := make(map[string]bool)
	for _, g := range games {
		if !strings.Contains(g.Division, "playoffs") {
			set[g.Division] = true
		}
	}
	return sortedKeys(set)
}

// Managers returns every assigned manager, sorted.
func Managers(games []*schedule.Game) []string {
	set := make(map[string]bool)
	for _, g := range games {
		for _, m := range g.Managers() {
			set[m] = true
		}
	}
	return sortedKeys(set)
}

// Fields returns every field, sorted.
func Fields(games []*schedule.Game) []string {
	set := make(map[string]bool)
	for _, g := range games {
		set[g.Field] = true
	}
	return sortedKeys(set)
}

// GamesForField returns the games played on field, in start order.
func GamesForField(games []*schedule.Game, field string) []*schedule.Game {
	var matched []*schedule.Game
	for _, g := range games {
		if g.Field == field {
			matched = append(matched, g)
		}
	}
	return schedule.SortByStart(matched)
}

func checkCapitalization(games []*schedule.Game) []CaseDrift {
	var drift []CaseDrift
	for _, set := range []struct {
		kind   string
		labels []string
	}{
		{"division", Divisions(games)},
		{"manager", Managers(games)},
		{"field", Fields(games)},
	} {
		byLower := make(map[string][]string)
		var order []string
		for _, label := range set.labels {
			key := strings.ToLower(label)
			if byLower[key] == nil {
				order = append(order, key)
			}
			byLower[key] = append(byLower[key], label)
		}
		for _, key := range order {
			if len(byLower[key]) > 1 {
				drift = append(drift, CaseDrift{Kind: set.kind, Labels: byLower[key]})
			}
		}
	}
	return drift
}

// adjacentConflicts flags consecutive games, in start order, that overlap.
// Only neighbours are compared: a long game can hide a conflict with one
// two or more slots later.
func adjacentConflicts(resource string, games []*schedule.Game, tolerance time.Duration) []Conflict {
	var conflicts []Conflict
	sorted := schedule.SortByStart(games)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Duration.Overlaps(cur.Duration, tolerance) {
			conflicts = append(conflicts, Conflict{Resource: resource, First: prev, Second: cur})
		}
	}
	return conflicts
}

func checkFieldConflicts(games []*schedule.Game) []Conflict {
	byField := make(map[string][]*schedule.Game)
	for _, g := range games {
		byField[g.Field] = append(byField[g.Field], g)
	}

	var conflicts []Conflict
	for _, field := range Fields(games) {
		conflicts = append(conflicts, adjacentConflicts(field, byField[field], 0)...)
	}
	return conflicts
}

func checkManagerConflicts(cfg *config.Config, games []*schedule.Game) []Conflict {
	byManager := make(map[string][]*schedule.Game)
	for _, g := range games {
		for _, m := range g.Managers() {
			// A manager on both sides still has the game once.
			if n := len(byManager[m]); n > 0 && byManager[m][n-1] == g {
				continue
			}
			byManager[m] = append(byManager[m], g)
		}
	}

	buffer := cfg.Rules.ManagerBuffer()
	var conflicts []Conflict
	for _, m := range Managers(games) {
		conflicts = append(conflicts, adjacentConflicts(m, byManager[m], buffer)...)
	}
	sort.SliceStable(conflicts, func(i, j int) bool {
		return conflicts[i].First.Duration.Start.Before(conflicts[j].First.Duration.Start)
	})
	return conflicts
}

func checkWeeklyOverloads(cfg *config.Config, games []*schedule.Game) []Overload {
	type managerWeek struct {
		division string
		manager  string
		week     int
	}
	groups := make(map[managerWeek][]*schedule.Game)
	for _, g := range games {
		week, _ := g.WeekAndDay()
		for _, m := range []string{g.HomeManager, g.AwayManager} {
			if m == "" {
				continue
			}
			key := managerWeek{g.Division, m, week}
			groups[key] = append(groups[key], g)
		}
	}

	var overloads []Overload
	for key, list := range groups {
		if len(list) > cfg.Rules.MaxGamesPerWeek {
			overloads = append(overloads, Overload{
				Division: key.division,
				Manager:  key.manager,
				Week:     key.week,
				Games:    list,
			})
		}
	}
	sort.Slice(overloads, func(i, j int) bool {
		a, b := overloads[i], overloads[j]
		if a.Division != b.Division {
			return a.Division < b.Division
		}
		if a.Manager != b.Manager {
			return a.Manager < b.Manager
		}
		return a.Week < b.Week
	})
	return overloads
}

func checkSundayGames(cfg *config.Config, games []*schedule.Game) []*schedule.Game {
	if cfg.Rules.AllowSundayGames {
		return nil
	}
	var sunday []*schedule.Game
	for _, g := range games {
		if g.Weekday() == 6 {
			sunday = append(sunday, g)
		}
	}
	return sunday
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
