// Package division summarizes home/away balance and matchups per division.
package division

import (
	"sort"
	"time"

	"github.com/derekprior/schedcheck/internal/schedule"
)

// Pair keys a matchup. For hosted counts A is home and B is away; for
// played counts the pair is normalized so that A <= B.
type Pair struct {
	A, B string
}

func normalize(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{a, b}
}

// Summary is the home/away and matchup breakdown of one division.
type Summary struct {
	Division string
	Games    int
	Teams    []string // sorted

	Home         map[string]int
	Away         map[string]int
	SaturdayHome map[string]int
	SaturdayAway map[string]int

	hosted map[Pair]int
	played map[Pair]int
}

// Summarize builds the summary for division from the games that belong to it.
// Games from other divisions are ignored.
func Summarize(division string, games []*schedule.Game) *Summary {
	s := &Summary{
		Division:     division,
		Home:         make(map[string]int),
		Away:         make(map[string]int),
		SaturdayHome: make(map[string]int),
		SaturdayAway: make(map[string]int),
		hosted:       make(map[Pair]int),
		played:       make(map[Pair]int),
	}

	teams := make(map[string]bool)
	for _, g := range games {
		if g.Division != division {
			continue
		}
		s.Games++
		teams[g.Home] = true
		teams[g.Away] = true

		s.Home[g.Home]++
		s.Away[g.Away]++
		if g.Duration.Start.Weekday() == time.Saturday {
			s.SaturdayHome[g.Home]++
			s.SaturdayAway[g.Away]++
		}
		s.hosted[Pair{g.Home, g.Away}]++
		s.played[normalize(g.Home, g.Away)]++
	}

	for t := range teams {
		s.Teams = append(s.Teams, t)
	}
	sort.Strings(s.Teams)
	return s
}

// Hosted returns how many times home hosted away. ok is false when the two
// were never scheduled with home hosting.
func (s *Summary) Hosted(home, away string) (n int, ok bool) {
	n, ok = s.hosted[Pair{home, away}]
	return n, ok
}

// Played returns how many times a and b met at either venue. ok is false
// when they were never scheduled against each other.
func (s *Summary) Played(a, b string) (n int, ok bool) {
	n, ok = s.played[normalize(a, b)]
	return n, ok
}

// Unplayed returns the pairs of distinct teams that never meet, in team order.
func (s *Summary) Unplayed() []Pair {
	var pairs []Pair
	for i, a := range s.Teams {
		for _, b := range s.Teams[i+1:] {
			if _, ok := s.Played(a, b); !ok {
				pairs = append(pairs, Pair{a, b})
			}
		}
	}
	return pairs
}
