package draw

import (
	"math/rand"
	"slices"

	"github.com/okian/fairdraw/internal/domain/model"
)

// The functions in this file restore one invariant each after the primary
// allocation path. Each returns how many units it had to move so callers can
// report it.

// fillDeficit adds one match at a time to participants in shuffled order,
// cycling, until deficit units are placed.
func fillDeficit(targets Targets, order []string, deficit int, rng *rand.Rand) int {
	if deficit <= 0 || len(order) == 0 {
		return 0
	}
	ppl := slices.Clone(order)
	rng.Shuffle(len(ppl), func(i, j int) { ppl[i], ppl[j] = ppl[j], ppl[i] })
	for i := range deficit {
		targets[ppl[i%len(ppl)]]++
	}
	return deficit
}

// trimExcess removes excess units, one per participant per pass, taking the
// largest targets first. Only participants with a positive target are
// touched; if none remain, forceTrim finishes the job and its count is
// returned separately as a diagnostic.
func trimExcess(targets Targets, order []string, excess int) (trimmed, forced int) {
	for excess > 0 {
		cands := make([]string, 0, len(order))
		for _, name := range order {
			if targets[name] > 0 {
				cands = append(cands, name)
			}
		}
		if len(cands) == 0 {
			return trimmed, forceTrim(targets, order, excess)
		}
		slices.SortStableFunc(cands, func(a, b string) int { return targets[b] - targets[a] })
		for _, name := range cands {
			if excess == 0 {
				break
			}
			targets[name]--
			excess--
			trimmed++
		}
	}
	return trimmed, 0
}

// forceTrim decrements cyclically with no floor. Reaching it means the
// targets were inconsistent with the requested total.
func forceTrim(targets Targets, order []string, excess int) int {
	if excess <= 0 || len(order) == 0 {
		return 0
	}
	for i := range excess {
		targets[order[i%len(order)]]--
	}
	return excess
}

// fixOddGroups makes every group's degree sum even. Odd groups are taken in
// pairs: the first gains a match on its lowest member and the second gives
// one up from its highest, so the overall total is unchanged. An unpaired
// odd group, or one with nothing to give, gains a match instead.
func fixOddGroups(roster model.Roster, targets Targets) int {
	fixed := 0
	give := false
	for _, g := range roster {
		if g.Size() == 0 || targets.GroupSum(g)%2 == 0 {
			continue
		}
		if top := highest(g.Participants, targets); give && targets[top] > 0 {
			targets[top]--
		} else {
			targets[lowest(g.Participants, targets, "")]++
		}
		give = !give
		fixed++
	}
	return fixed
}

// rebalanceDominant enforces the loopless multigraph condition inside each
// group: no member's target may exceed the sum of the others'. Surplus is
// moved from the dominant member to the lowest others, keeping the group
// sum. A lone member cannot play at all and is clamped to zero; the lost
// units come back through padMatches.
func rebalanceDominant(roster model.Roster, targets Targets) int {
	fixed := 0
	for _, g := range roster {
		switch g.Size() {
		case 0:
			continue
		case 1:
			if name := g.Participants[0]; targets[name] != 0 {
				targets[name] = 0
				fixed++
			}
			continue
		}

		top := highest(g.Participants, targets)
		rest := targets.GroupSum(g) - targets[top]
		if targets[top] <= rest {
			continue
		}
		move := (targets[top] - rest + 1) / 2
		targets[top] -= move
		for range move {
			targets[lowest(g.Participants, targets, top)]++
		}
		fixed++
	}
	return fixed
}

// highest returns the earliest participant with the largest target.
func highest(names []string, targets Targets) string {
	best := names[0]
	for _, name := range names[1:] {
		if targets[name] > targets[best] {
			best = name
		}
	}
	return best
}

// lowest returns the earliest participant with the smallest target,
// skipping skip.
func lowest(names []string, targets Targets, skip string) string {
	best := ""
	for _, name := range names {
		if name == skip {
			continue
		}
		if best == "" || targets[name] < targets[best] {
			best = name
		}
	}
	return best
}

// truncateMatches keeps the first total matches.
func truncateMatches(matches []model.Match, total int) ([]model.Match, int) {
	if len(matches) <= total {
		return matches, 0
	}
	return matches[:total], len(matches) - total
}

// padMatches appends random in-group pairings until there are total matches.
func padMatches(roster model.Roster, matches []model.Match, total int, rng *rand.Rand) ([]model.Match, int, error) {
	missing := total - len(matches)
	if missing <= 0 {
		return matches, 0, nil
	}
	pool := make([]model.Match, 0)
	for _, g := range roster {
		for _, a := range g.Participants {
			for _, b := range g.Participants {
				if a != b {
					pool = append(pool, model.Match{Group: g.Name, A: a, B: b})
				}
			}
		}
	}
	if len(pool) == 0 {
		return matches, 0, ErrNoEligiblePairs
	}
	for range missing {
		matches = append(matches, pool[rng.Intn(len(pool))])
	}
	return matches, missing, nil
}
