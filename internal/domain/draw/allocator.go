package draw

// GroupSize is the input row of the allocator.
type GroupSize struct {
	Name string
	Size int
}

// AllocateExtras decides, per group, how many members play q+1 matches
// instead of q. Each k_g keeps the group's degree sum even (k_g has the
// parity of q*s_g), stays within [0, s_g], and the k_g add up to r exactly.
// Any feasible combination is accepted. ok is false when none exists.
func AllocateExtras(sizes []GroupSize, q, r int) (map[string]int, bool) {
	if r < 0 || q < 0 {
		return nil, false
	}

	// dp[s] holds the k values of the first witness reaching partial sum s.
	dp := make([][]int, r+1)
	dp[0] = []int{}

	for _, g := range sizes {
		next := make([][]int, r+1)
		reachable := false
		start := (q * g.Size) % 2
		for sum, chosen := range dp {
			if chosen == nil {
				continue
			}
			for k := start; k <= g.Size; k += 2 {
				ns := sum + k
				if ns > r {
					break
				}
				if next[ns] != nil {
					continue
				}
				w := make([]int, len(chosen)+1)
				copy(w, chosen)
				w[len(chosen)] = k
				next[ns] = w
				reachable = true
			}
		}
		if !reachable {
			return nil, false
		}
		dp = next
	}

	if dp[r] == nil {
		return nil, false
	}
	out := make(map[string]int, len(sizes))
	for i, g := range sizes {
		out[g.Name] = dp[r][i]
	}
	return out, true
}

// fallbackExtras spreads r extra units without regard to parity: each group
// greedily takes as many as it has members, then any leftover is handed out
// one at a time round-robin to groups that still have room.
func fallbackExtras(sizes []GroupSize, r int) map[string]int {
	out := make(map[string]int, len(sizes))
	remaining := r
	for _, g := range sizes {
		take := min(g.Size, remaining)
		out[g.Name] = take
		remaining -= take
	}
	for remaining > 0 {
		progressed := false
		for _, g := range sizes {
			if remaining == 0 {
				break
			}
			if out[g.Name] < g.Size {
				out[g.Name]++
				remaining--
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return out
}
