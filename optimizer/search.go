package optimizer

import "sort"

// dpState is the memoisation key for the DP search: current position in the
// pruned candidate list, the end index of the last chosen candidate (-1 if
// none chosen yet), and quota used so far.
type dpState struct {
	idx     int
	lastEnd int
	used    int
}

// dpResult is what a DP state resolves to.
type dpResult struct {
	totalDaysOff int
	segments     []CandidateSegment
	quotaSpent   int
}

// searchBest is C4. It performs a top-down memoised recursion over the
// pruned, start_idx-ascending candidate list, picking a subset of
// pairwise-disjoint, quota-respecting candidates spaced at least
// `spacing` days apart that maximises total days off. Ties are broken by
// preferring the earlier-starting candidate, which falls out naturally
// from scanning candidates in ascending start_idx order and only replacing
// the running best on a strict improvement.
func searchBest(candidates []CandidateSegment, quota, spacing int) dpResult {
	memo := make(map[dpState]dpResult)
	return search(candidates, 0, -1, 0, quota, spacing, memo)
}

func search(candidates []CandidateSegment, idx, lastEnd, used, quota, spacing int, memo map[dpState]dpResult) dpResult {
	if idx >= len(candidates) {
		return dpResult{}
	}

	key := dpState{idx: idx, lastEnd: lastEnd, used: used}
	if v, ok := memo[key]; ok {
		return v
	}

	requiredStart := 0
	if lastEnd >= 0 {
		requiredStart = lastEnd + spacing
	}

	pos := lowerBoundStart(candidates, idx, requiredStart)

	best := dpResult{} // no further candidates chosen: 0 days, empty selection

	for j := pos; j < len(candidates); j++ {
		c := candidates[j]
		if c.StartIdx < requiredStart {
			continue // defensive; pos should already guarantee this
		}
		if used+c.CTOUsed > quota {
			continue
		}

		sub := search(candidates, j+1, c.EndIdx, used+c.CTOUsed, quota, spacing, memo)
		totalDaysOff := c.TotalDays + sub.totalDaysOff

		if totalDaysOff > best.totalDaysOff {
			segments := make([]CandidateSegment, 0, len(sub.segments)+1)
			segments = append(segments, c)
			segments = append(segments, sub.segments...)
			best = dpResult{
				totalDaysOff: totalDaysOff,
				segments:     segments,
				quotaSpent:   c.CTOUsed + sub.quotaSpent,
			}
		}
	}

	memo[key] = best
	return best
}

// lowerBoundStart returns the first index at or after `from` whose
// StartIdx is >= target, via binary search over candidates[from:].
func lowerBoundStart(candidates []CandidateSegment, from, target int) int {
	n := len(candidates)
	return from + sort.Search(n-from, func(i int) bool {
		return candidates[from+i].StartIdx >= target
	})
}
