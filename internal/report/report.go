// Package report renders schedule findings as plain text for people.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/derekprior/schedcheck/internal/division"
	"github.com/derekprior/schedcheck/internal/schedule"
	"github.com/derekprior/schedcheck/internal/validator"
)

// Check is everything shown by the check report.
type Check struct {
	Source    string
	Games     []*schedule.Game
	Findings  *validator.Findings
	Weeks     []validator.WeekCount
	Divisions []*division.Summary
}

// WriteCheck writes the full check report to w.
func WriteCheck(w io.Writer, c *Check) error {
	p := &printer{w: w}

	p.printf("Schedule file: %s\n\n", c.Source)

	violations := c.Findings.Violations()
	writeViolations(p, violations, validator.RuleCapitalization)

	p.printf("Games: %d\n", len(c.Games))
	p.printf("Divisions: %d\n", len(validator.Divisions(c.Games)))
	p.printf("Managers: %d\n", len(validator.Managers(c.Games)))

	for _, field := range validator.Fields(c.Games) {
		p.printf("Games for field %s: %d\n", field, len(validator.GamesForField(c.Games, field)))
	}
	n := writeViolations(p, violations, validator.RuleFieldConflict)
	p.printf("%d field conflicts\n", n)

	n = writeViolations(p, violations, validator.RuleManagerConflict)
	p.printf("%d manager conflicts\n", n)

	if n = writeViolations(p, violations, validator.RuleSunday); n > 0 {
		p.printf("%d Sunday games\n", n)
	}

	writeViolations(p, violations, validator.RuleWeeklyLimit)
	p.printf("%d managers have too many games per week\n", len(c.Findings.OverloadedManagers()))

	writeWeeks(p, c.Weeks)

	for _, s := range c.Divisions {
		writeDivision(p, s)
	}
	return p.err
}

// writeViolations prints the violations raised by rule and returns how many
// there were.
func writeViolations(p *printer, violations []validator.Violation, rule string) int {
	n := 0
	for _, v := range violations {
		if v.Rule != rule {
			continue
		}
		glyph := "⚠"
		if v.Type == "error" {
			glyph = "✗"
		}
		p.printf("%s %s\n", glyph, v.Message)
		n++
	}
	return n
}

func writeWeeks(p *printer, weeks []validator.WeekCount) {
	p.printf("\nGames by week\n")
	total := 0
	for _, w := range weeks {
		p.printf("%s: %2d\n", w.Label(), w.Games)
		total += w.Games
	}
	p.printf("Total games by week: %d\n", total)
}

func writeDivision(p *printer, s *division.Summary) {
	p.printf("\n---%s---\n", s.Division)
	p.printf("Games for division: %d\n", s.Games)

	p.printf("\nHome/away\n")
	for i, team := range s.Teams {
		p.printf("%2d: %d/%d %s\n", i+1, s.Home[team], s.Away[team], team)
	}

	p.printf("\nSaturday home/away\n")
	for i, team := range s.Teams {
		p.printf("%2d: %d/%d %s\n", i+1, s.SaturdayHome[team], s.SaturdayAway[team], team)
	}

	// Rows are home teams, columns away teams.
	p.printf("\nMatchups\n")
	writeMatrix(p, s.Teams, s.Hosted)

	// Each meeting is shown once, above the diagonal.
	p.printf("\nTotal\n")
	writeMatrix(p, s.Teams, func(a, b string) (int, bool) {
		if a >= b {
			return 0, false
		}
		return s.Played(a, b)
	})

	if pairs := s.Unplayed(); len(pairs) > 0 {
		p.printf("\nNever scheduled\n")
		for _, pair := range pairs {
			p.printf("  %s vs %s\n", pair.A, pair.B)
		}
	}
}

// writeMatrix prints a team-by-team grid. Pairs never scheduled are blank,
// which keeps them apart from pairs with a count.
func writeMatrix(p *printer, teams []string, count func(row, col string) (int, bool)) {
	var hdr strings.Builder
	hdr.WriteString("    ")
	for i := range teams {
		fmt.Fprintf(&hdr, " %3d", i+1)
	}
	p.printf("%s\n", hdr.String())
	p.printf("    %s\n", strings.Repeat("----", len(teams)))

	for i, row := range teams {
		var line strings.Builder
		fmt.Fprintf(&line, "%2d: ", i+1)
		for _, col := range teams {
			if n, ok := count(row, col); ok {
				fmt.Fprintf(&line, " %3d", n)
			} else {
				line.WriteString("    ")
			}
		}
		p.printf("%s\n", line.String())
	}
}

const cellWidth = 19

// WriteFieldUsage writes, for each day, one column per field and one row per
// game slot. Cells show start time and division; empty slots are blank.
func WriteFieldUsage(w io.Writer, days []*schedule.Day) error {
	p := &printer{w: w}
	for _, day := range days {
		p.printf("%s\n", day.Date)
		for _, field := range day.Fields {
			p.printf("%-*s  ", cellWidth, field)
		}
		p.printf("\n")
		for range day.Fields {
			p.printf("%s  ", strings.Repeat("-", cellWidth))
		}
		p.printf("\n")

		for i := 0; i < day.Rows(); i++ {
			for _, field := range day.Fields {
				if g := day.GameAt(field, i); g != nil {
					p.printf("%s %-13s  ", g.TimeStr(), g.Division)
				} else {
					p.printf("%s  ", strings.Repeat(" ", cellWidth))
				}
			}
			p.printf("\n")
		}
		p.printf("\n")
	}
	return p.err
}

// printer keeps the first write error so callers can check once at the end.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
