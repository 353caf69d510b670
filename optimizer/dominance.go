package optimizer

import "sort"

// pruneCandidates is C3. It drops candidates that exceed the available
// quota, then drops any candidate dominated by another candidate sharing
// its start index, and finally sorts survivors by start index ascending
// (stable).
func pruneCandidates(candidates []CandidateSegment, quota int) []CandidateSegment {
	affordable := candidates[:0:0]
	for _, c := range candidates {
		if c.CTOUsed <= quota {
			affordable = append(affordable, c)
		}
	}

	byStart := make(map[int][]CandidateSegment)
	for _, c := range affordable {
		byStart[c.StartIdx] = append(byStart[c.StartIdx], c)
	}

	var survivors []CandidateSegment
	for _, group := range byStart {
		for i, a := range group {
			dominated := false
			for j, b := range group {
				if i == j {
					continue
				}
				if dominatesCandidate(b, a) {
					dominated = true
					break
				}
			}
			if !dominated {
				survivors = append(survivors, a)
			}
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].StartIdx < survivors[j].StartIdx
	})
	return survivors
}

// dominatesCandidate reports whether b weakly dominates a — at least as
// long, ending at least as late, at no greater quota cost — with at least
// one strict improvement. The strict-improvement requirement is what
// guarantees two mutually weakly-dominating (i.e. identical) candidates
// are both kept rather than both dropped.
func dominatesCandidate(b, a CandidateSegment) bool {
	if b.EndIdx < a.EndIdx || b.CTOUsed > a.CTOUsed || b.TotalDays < a.TotalDays {
		return false
	}
	return b.EndIdx > a.EndIdx || b.CTOUsed < a.CTOUsed || b.TotalDays > a.TotalDays
}
