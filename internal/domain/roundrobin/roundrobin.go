// Package roundrobin enumerates single round-robin schedules with the circle
// method. The draw itself does not use it; it describes each group for display.
package roundrobin

import "github.com/okian/fairdraw/internal/domain/model"

// bye pads odd-sized groups; pairings against it are dropped.
const bye = "\x00bye"

// Pair is one pairing of a round.
type Pair [2]string

// Schedule returns the rounds of a single round-robin over participants.
// Groups smaller than two have no rounds.
func Schedule(participants []string) [][]Pair {
	if len(participants) < 2 {
		return nil
	}
	parts := append([]string(nil), participants...)
	if len(parts)%2 == 1 {
		parts = append(parts, bye)
	}
	n := len(parts)

	rounds := make([][]Pair, 0, n-1)
	for range n - 1 {
		round := make([]Pair, 0, n/2)
		for i := range n / 2 {
			a, b := parts[i], parts[n-1-i]
			if a != bye && b != bye {
				round = append(round, Pair{a, b})
			}
		}
		rounds = append(rounds, round)

		// Keep the first seat fixed and rotate the rest clockwise.
		last := parts[n-1]
		copy(parts[2:], parts[1:n-1])
		parts[1] = last
	}
	return rounds
}

// Summarize describes g's round-robin.
func Summarize(g model.Group) model.GroupSummary {
	rounds := Schedule(g.Participants)
	s := model.GroupSummary{
		Group:        g.Name,
		Participants: g.Size(),
		Rounds:       len(rounds),
	}
	if len(rounds) > 0 {
		s.MatchesPerRound = len(rounds[0])
	}
	for _, r := range rounds {
		s.UniqueMatches += len(r)
	}
	return s
}

// SummarizeRoster describes every group in roster order.
func SummarizeRoster(roster model.Roster) []model.GroupSummary {
	out := make([]model.GroupSummary, len(roster))
	for i, g := range roster {
		out[i] = Summarize(g)
	}
	return out
}
