package model

import (
	"fmt"
	"strings"
)

// Roster is the ordered list of groups taking part in a draw. Group order is
// significant: every stage iterates groups in this order so seeded runs are
// reproducible.
type Roster []Group

// Participants returns every participant label in roster order.
func (r Roster) Participants() []string {
	out := make([]string, 0, r.Len())
	for _, g := range r {
		out = append(out, g.Participants...)
	}
	return out
}

// Len returns the total participant count.
func (r Roster) Len() int {
	n := 0
	for _, g := range r {
		n += len(g.Participants)
	}
	return n
}

// Validate checks that group names are present and distinct and that every
// participant label is non-empty and unique across the roster.
func (r Roster) Validate() error {
	groups := make(map[string]struct{}, len(r))
	seen := make(map[string]string, r.Len())
	for i, g := range r {
		if strings.TrimSpace(g.Name) == "" {
			return fmt.Errorf("%w: group %d has no name", ErrInvalidRoster, i)
		}
		if _, dup := groups[g.Name]; dup {
			return fmt.Errorf("%w: group %q listed twice", ErrInvalidRoster, g.Name)
		}
		groups[g.Name] = struct{}{}
		for _, p := range g.Participants {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("%w: empty participant in group %q", ErrInvalidRoster, g.Name)
			}
			if other, dup := seen[p]; dup {
				return fmt.Errorf("%w: %q in groups %q and %q", ErrDuplicateParticipant, p, other, g.Name)
			}
			seen[p] = g.Name
		}
	}
	return nil
}
