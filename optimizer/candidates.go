package optimizer

// generateCandidates is C2. It enumerates all candidate segments of length
// L in [minLen, maxLen] starting at every index i for which i+L-1 is in
// range and the window's cto_used > 0.
func generateCandidates(days []Day, minLen, maxLen int) []CandidateSegment {
	var out []CandidateSegment
	n := len(days)
	for length := minLen; length <= maxLen; length++ {
		for start := 0; start+length-1 < n; start++ {
			end := start + length - 1
			used := countCTOUsed(days, start, end)
			if used == 0 {
				continue
			}
			out = append(out, newCandidateSegment(start, end, used))
		}
	}
	return out
}

func countCTOUsed(days []Day, start, end int) int {
	used := 0
	for i := start; i <= end; i++ {
		if !days[i].IsFixedOff() {
			used++
		}
	}
	return used
}

// generateCandidatesForStrategy runs C2 for every window the strategy
// requires and concatenates the results (balanced runs all four windows).
func generateCandidatesForStrategy(days []Day, s Strategy) []CandidateSegment {
	var all []CandidateSegment
	for _, w := range s.windows() {
		all = append(all, generateCandidates(days, w.min, w.max)...)
	}
	return all
}
