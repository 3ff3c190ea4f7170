package draw

import (
	"math/rand"
	"slices"

	"github.com/okian/fairdraw/internal/domain/model"
)

// SequenceResult is an ordering of a match list.
type SequenceResult struct {
	Matches []model.Match
	// ForcedRepeats counts steps where every remaining match involved a
	// player from the previous match.
	ForcedRepeats int
}

// Sequence orders matches so no player appears in two consecutive matches
// whenever the remaining pool allows it, and so that rest between a
// player's appearances is spread out.
//
// At each step the candidates are the matches sharing nobody with the
// previous one (or everything left, if that set is empty). The candidate
// whose less-rested player has rested longest wins; ties go to the earliest
// match in a shuffled copy of the input. Runs in O(M²).
func Sequence(matches []model.Match, rng *rand.Rand) SequenceResult {
	if len(matches) == 0 {
		return SequenceResult{}
	}
	remaining := slices.Clone(matches)
	rng.Shuffle(len(remaining), func(i, j int) { remaining[i], remaining[j] = remaining[j], remaining[i] })

	// Idle time of p before step t is t-last[p]-1, or t if p has not played.
	last := make(map[string]int)
	idle := func(p string, step int) int {
		if l, ok := last[p]; ok {
			return step - l - 1
		}
		return step
	}
	pick := func(step int, exclude *model.Match) int {
		best, bestScore := -1, -1
		for i, m := range remaining {
			if exclude != nil && m.Overlaps(*exclude) {
				continue
			}
			if s := min(idle(m.A, step), idle(m.B, step)); s > bestScore {
				best, bestScore = i, s
			}
		}
		return best
	}

	out := SequenceResult{Matches: make([]model.Match, 0, len(matches))}
	for step := 0; len(remaining) > 0; step++ {
		var prev *model.Match
		if step > 0 {
			prev = &out.Matches[step-1]
		}
		best := pick(step, prev)
		if best < 0 {
			out.ForcedRepeats++
			best = pick(step, nil)
		}
		m := remaining[best]
		out.Matches = append(out.Matches, m)
		last[m.A], last[m.B] = step, step
		remaining = slices.Delete(remaining, best, best+1)
	}
	return out
}
