package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/fairdraw/internal/domain/model"
)

// writeReport prints the human-readable draw report.
func writeReport(w io.Writer, roster model.Roster, d model.Draw) error {
	var b strings.Builder

	b.WriteString("Group info:\n")
	unique := 0
	for _, g := range d.Groups {
		fmt.Fprintf(&b, "- Group %s: %d participants -> %d matches per round, %d unique matches\n",
			g.Group, g.Participants, g.MatchesPerRound, g.UniqueMatches)
		unique += g.UniqueMatches
	}
	fmt.Fprintf(&b, "Total participants: %d, total unique matches (all groups): %d\n\n", roster.Len(), unique)

	fmt.Fprintf(&b, "Target per person (theoretical): ~%.3f matches/person\n", d.Average)
	fmt.Fprintf(&b, "Total generated matches: %d (target %d)\n", len(d.Sequence), d.TargetTotal)
	fmt.Fprintf(&b, "Seed: %d\n", d.Seed)
	if line := recoveryLine(d.Report); line != "" {
		fmt.Fprintf(&b, "Adjustments: %s\n", line)
	}

	b.WriteString("\nMatches (all groups mixed):\n")
	for _, m := range d.Sequence {
		fmt.Fprintf(&b, "%s vs %s\n", m.A, m.B)
	}

	if len(d.Counts) > 0 {
		lo, hi := spread(d.Counts)
		fmt.Fprintf(&b, "\nMatches per participant, spread: min %d, max %d (difference %d)\n", lo, hi, hi-lo)
		for _, g := range roster {
			fmt.Fprintf(&b, " Group %s:\n", g.Name)
			for _, p := range g.Participants {
				c := d.Counts[p]
				fmt.Fprintf(&b, "  %s: %d (%+.2f)\n", p, c, float64(c)-d.Average)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func spread(counts map[string]int) (lo, hi int) {
	first := true
	for _, c := range counts {
		if first {
			lo, hi, first = c, c, false
			continue
		}
		lo = min(lo, c)
		hi = max(hi, c)
	}
	return lo, hi
}

// recoveryLine lists the non-zero adjustment counters of r.
func recoveryLine(r model.Report) string {
	var parts []string
	add := func(name string, n int) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", name, n))
		}
	}
	if r.AllocatorFallback {
		parts = append(parts, "allocator_fallback")
	}
	add("deficit_filled", r.DeficitFilled)
	add("excess_trimmed", r.ExcessTrimmed)
	add("forced_trims", r.ForcedTrims)
	add("odd_groups_fixed", r.OddGroupsFixed)
	add("dominant_rebalanced", r.DominantRebalanced)
	add("truncated", r.Truncated)
	add("padded", r.Padded)
	add("forced_repeats", r.ForcedRepeats)
	return strings.Join(parts, " ")
}
