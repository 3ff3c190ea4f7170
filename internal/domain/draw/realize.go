package draw

import (
	"container/heap"
	"fmt"

	"github.com/okian/fairdraw/internal/domain/model"
)

// RealizeGroup builds matches inside g so that every member appears exactly
// targets[member] times. Repeated pairings are allowed.
//
// The member with the most remaining matches is always paired, one match at
// a time, with whoever else currently has the most remaining, until it is
// satisfied. Remaining counts live in a max-heap; ties go to the member
// listed first.
func RealizeGroup(g model.Group, targets Targets) ([]model.Match, error) {
	h := make(degreeHeap, 0, g.Size())
	sum := 0
	for i, name := range g.Participants {
		d := targets[name]
		if d < 0 {
			return nil, fmt.Errorf("%w: group %q: %s=%d", ErrNegativeTarget, g.Name, name, d)
		}
		sum += d
		if d > 0 {
			h = append(h, &degreeEntry{name: name, rem: d, pos: i})
		}
	}
	if sum%2 != 0 {
		return nil, fmt.Errorf("%w: group %q sums to %d", ErrOddDegreeSum, g.Name, sum)
	}
	heap.Init(&h)

	matches := make([]model.Match, 0, sum/2)
	for h.Len() > 0 {
		u := heap.Pop(&h).(*degreeEntry)
		for u.rem > 0 {
			if h.Len() == 0 {
				return nil, fmt.Errorf("%w: group %q: %s has %d matches left and no partner",
					ErrRealization, g.Name, u.name, u.rem)
			}
			v := heap.Pop(&h).(*degreeEntry)
			matches = append(matches, model.Match{Group: g.Name, A: u.name, B: v.name})
			u.rem--
			v.rem--
			if v.rem > 0 {
				heap.Push(&h, v)
			}
		}
	}
	return matches, nil
}

type degreeEntry struct {
	name string
	rem  int
	pos  int
}

// degreeHeap is a max-heap on remaining degree, earliest position first.
type degreeHeap []*degreeEntry

func (h degreeHeap) Len() int { return len(h) }

func (h degreeHeap) Less(i, j int) bool {
	if h[i].rem != h[j].rem {
		return h[i].rem > h[j].rem
	}
	return h[i].pos < h[j].pos
}

func (h degreeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *degreeHeap) Push(x any) { *h = append(*h, x.(*degreeEntry)) }

func (h *degreeHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
