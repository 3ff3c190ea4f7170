// Package model contains domain models passed between layers.
package model

import "time"

// Group is a named, ordered set of participants. Matches never cross
// group boundaries.
type Group struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
}

// Size returns the number of participants in the group.
func (g Group) Size() int { return len(g.Participants) }

// Match is an unordered pairing of two distinct participants of one group.
type Match struct {
	Group string `json:"group"`
	A     string `json:"a"`
	B     string `json:"b"`
}

// Involves reports whether p plays in m.
func (m Match) Involves(p string) bool { return m.A == p || m.B == p }

// Overlaps reports whether m and o share a participant.
func (m Match) Overlaps(o Match) bool { return m.Involves(o.A) || m.Involves(o.B) }

// Key returns an order-independent identity for the pairing, used to
// compare match multisets.
func (m Match) Key() string {
	a, b := m.A, m.B
	if b < a {
		a, b = b, a
	}
	return m.Group + "\x00" + a + "\x00" + b
}

// GroupSummary describes a group's single round-robin, for display.
type GroupSummary struct {
	Group           string `json:"group"`
	Participants    int    `json:"participants"`
	Rounds          int    `json:"rounds"`
	MatchesPerRound int    `json:"matches_per_round"`
	UniqueMatches   int    `json:"unique_matches"`
}

// Report lists the recovery steps that fired while building a draw. A zero
// Report means the primary path produced the result unaided.
type Report struct {
	AllocatorFallback  bool `json:"allocator_fallback"`
	DeficitFilled      int  `json:"deficit_filled"`
	ExcessTrimmed      int  `json:"excess_trimmed"`
	ForcedTrims        int  `json:"forced_trims"`
	OddGroupsFixed     int  `json:"odd_groups_fixed"`
	DominantRebalanced int  `json:"dominant_rebalanced"`
	Truncated          int  `json:"truncated"`
	Padded             int  `json:"padded"`
	ForcedRepeats      int  `json:"forced_repeats"`
}

// Draw is the final artifact of one run.
type Draw struct {
	ID          string         `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	Seed        int64          `json:"seed"`
	TargetTotal int            `json:"target_total"`
	Average     float64        `json:"average"`
	Sequence    []Match        `json:"sequence"`
	Counts      map[string]int `json:"counts"`
	Groups      []GroupSummary `json:"groups"`
	Report      Report         `json:"report"`
}

// DrawSummary is the list view of a Draw.
type DrawSummary struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	TargetTotal  int       `json:"target_total"`
	Participants int       `json:"participants"`
	Groups       int       `json:"groups"`
}

// Summary returns the list view of d.
func (d Draw) Summary() DrawSummary {
	return DrawSummary{
		ID:           d.ID,
		CreatedAt:    d.CreatedAt,
		TargetTotal:  d.TargetTotal,
		Participants: len(d.Counts),
		Groups:       len(d.Groups),
	}
}
