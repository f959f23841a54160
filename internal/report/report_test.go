package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/derekprior/schedcheck/internal/config"
	"github.com/derekprior/schedcheck/internal/division"
	"github.com/derekprior/schedcheck/internal/schedule"
	"github.com/derekprior/schedcheck/internal/validator"
)

func game(t *testing.T, division, away, home, date, start, stop, field string) *schedule.Game {
	t.Helper()
	g, err := schedule.NewGame(schedule.Record{
		Division: division,
		Away:     away,
		Home:     home,
		Date:     date,
		Start:    start,
		Stop:     stop,
		Field:    field,
	}, 2026)
	if err != nil {
		t.Fatalf("NewGame() error: %v", err)
	}
	return g
}

func testGames(t *testing.T) []*schedule.Game {
	return []*schedule.Game{
		game(t, "Majors", "Washington-Majors", "Majors - Jefferson", "Sat, Feb 14", "09:00", "11:00", "Field 1"),
		game(t, "Majors", "Majors - Jefferson", "Majors - Adams", "Sat, Feb 14", "10:00", "12:00", "Field 1"),
		game(t, "Majors", "Majors - Adams", "Washington-Majors", "Sun, Feb 15", "09:00", "11:00", "Field 2"),
		game(t, "Minors", "TBD", "TBD", "Tue, Feb 10", "17:45", "19:45", "Field 2"),
	}
}

func checkReport(t *testing.T, games []*schedule.Game) string {
	t.Helper()
	var summaries []*division.Summary
	for _, d := range validator.Divisions(games) {
		summaries = append(summaries, division.Summarize(d, games))
	}
	var buf bytes.Buffer
	err := WriteCheck(&buf, &Check{
		Source:    "schedule.csv",
		Games:     games,
		Findings:  validator.Check(config.Default(), games),
		Weeks:     validator.GamesByWeek(games),
		Divisions: summaries,
	})
	if err != nil {
		t.Fatalf("WriteCheck() error: %v", err)
	}
	return buf.String()
}

func TestWriteCheck(t *testing.T) {
	out := checkReport(t, testGames(t))

	for _, want := range []string{
		"Schedule file: schedule.csv\n",
		"Games: 4\n",
		"Divisions: 2\n",
		"Managers: 3\n",
		"Games for field Field 1: 2\n",
		"Games for field Field 2: 2\n",
		"⚠ Game conflict: Field 1/2026-02-14T09:00:00/Majors and Field 1/2026-02-14T10:00:00/Majors\n",
		"1 field conflicts\n",
		"⚠ Manager conflict: jefferson: Field 1/2026-02-14T09:00:00/Majors and Field 1/2026-02-14T10:00:00/Majors\n",
		"1 manager conflicts\n",
		"✗ Sunday game: 2026-02-15T09:00:00 Majors - Adams@Washington-Majors\n1 Sunday games\n",
		"0 managers have too many games per week\n",
		"M-F 02/09:  1\n",
		"Sat 02/14:  2\n",
		"Sun 02/15:  1\n",
		"Total games by week: 4\n",
		"---Majors---\n",
		"Games for division: 3\n",
		"---Minors---\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWriteCheckDivisionMatrices(t *testing.T) {
	out := checkReport(t, testGames(t))
	section := out[strings.Index(out, "---Majors---"):strings.Index(out, "---Minors---")]

	// Teams: 1 Majors - Adams, 2 Majors - Jefferson, 3 Washington-Majors.
	for _, want := range []string{
		"Home/away\n 1: 1/1 Majors - Adams\n 2: 1/1 Majors - Jefferson\n 3: 1/1 Washington-Majors\n",
		"Saturday home/away\n 1: 1/0 Majors - Adams\n 2: 1/1 Majors - Jefferson\n 3: 0/1 Washington-Majors\n",
		// Adams hosted Jefferson; Jefferson hosted Washington; Washington hosted Adams.
		"Matchups\n       1   2   3\n    ------------\n 1:        1    \n 2:            1\n 3:    1        \n",
		// Upper triangle only.
		"Total\n       1   2   3\n    ------------\n 1:        1   1\n 2:            1\n 3:             \n",
	} {
		if !strings.Contains(section, want) {
			t.Errorf("division section missing %q\n%s", want, section)
		}
	}
	if strings.Contains(section, "Never scheduled") {
		t.Errorf("every Majors pair met, got\n%s", section)
	}
}

func TestWriteCheckCaseDriftAndOverloads(t *testing.T) {
	var games []*schedule.Game
	for _, date := range []string{"Mon, Feb 9", "Wed, Feb 11", "Fri, Feb 13"} {
		games = append(games, game(t, "Majors", "Washington-Majors", "Majors - Jefferson", date, "17:45", "19:45", "Field 1"))
	}
	games = append(games,
		game(t, "majors", "TBD", "TBD", "Sat, Feb 14", "09:00", "11:00", "field 1"),
		game(t, "Majors", "TBD", "Majors - Adams", "Sat, Feb 21", "09:00", "11:00", "Field 1"),
	)
	out := checkReport(t, games)

	for _, want := range []string{
		"✗ Some divisions vary in capitalization: Majors, majors\n",
		"✗ Some fields vary in capitalization: Field 1, field 1\n",
		"⚠ Too many games per week for jefferson: ",
		"⚠ Too many games per week for washington: ",
		"2 managers have too many games per week\n",
		"Never scheduled\n  Majors - Adams vs Majors - Jefferson\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n%s", want, out)
		}
	}
}

func TestWriteCheckPrintsEveryViolation(t *testing.T) {
	games := append(testGames(t),
		game(t, "majors", "TBD", "TBD", "Sat, Feb 21", "09:00", "11:00", "field 1"),
	)
	out := checkReport(t, games)

	violations := validator.Check(config.Default(), games).Violations()
	if len(violations) == 0 {
		t.Fatal("expected violations")
	}
	for _, v := range violations {
		glyph := "⚠ "
		if v.Type == "error" {
			glyph = "✗ "
		}
		if !strings.Contains(out, glyph+v.Message+"\n") {
			t.Errorf("report missing %s violation %q\n%s", v.Rule, v.Message, out)
		}
	}
}

func TestWriteFieldUsage(t *testing.T) {
	days := schedule.GroupByDay(testGames(t))
	var buf bytes.Buffer
	if err := WriteFieldUsage(&buf, days); err != nil {
		t.Fatalf("WriteFieldUsage() error: %v", err)
	}
	out := buf.String()

	blank := strings.Repeat(" ", 19) + "  "
	dashes := strings.Repeat("-", 19) + "  "
	want := "2026-02-10\n" +
		"Field 1              Field 2              \n" +
		dashes + dashes + "\n" +
		blank + "17:45 Minors         \n" +
		"\n" +
		"2026-02-14\n" +
		"Field 1              Field 2              \n" +
		dashes + dashes + "\n" +
		"09:00 Majors         " + blank + "\n" +
		"10:00 Majors         " + blank + "\n" +
		"\n"
	if !strings.HasPrefix(out, want) {
		t.Errorf("field usage =\n%q\nwant prefix\n%q", out, want)
	}
	if !strings.Contains(out, "2026-02-15\n") {
		t.Errorf("missing Sunday block:\n%s", out)
	}
}

type failingWriter struct{ writes int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("disk full")
}

func TestWriteErrors(t *testing.T) {
	w := &failingWriter{}
	err := WriteFieldUsage(w, schedule.GroupByDay(testGames(t)))
	if err == nil || err.Error() != "disk full" {
		t.Errorf("error = %v, want disk full", err)
	}
	if w.writes != 1 {
		t.Errorf("writes = %d, want 1 after the first failure", w.writes)
	}
}
