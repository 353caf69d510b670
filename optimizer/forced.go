package optimizer

// breakBuilder tracks a break under construction by day index into the
// master calendar, so C5/C6 can extend or create breaks in place before C7
// converts everything to the public Break shape.
type breakBuilder struct {
	startIdx int
	endIdx   int
	dayIdxs  []int // indices actually belonging to the break (may skip interior fixed-off days for filler breaks)
	isFiller bool
}

// markChosenSegments marks C4's chosen segments onto the calendar (C1's
// output, C4's marking step) and returns one breakBuilder per segment, in
// the order C4 returned them.
func markChosenSegments(days []Day, owned []bool, segments []CandidateSegment) []*breakBuilder {
	builders := make([]*breakBuilder, 0, len(segments))
	for _, seg := range segments {
		idxs := make([]int, 0, seg.TotalDays)
		for i := seg.StartIdx; i <= seg.EndIdx; i++ {
			if !days[i].IsFixedOff() {
				days[i].IsCTO = true
			}
			days[i].InBreak = true
			owned[i] = true
			idxs = append(idxs, i)
		}
		builders = append(builders, &breakBuilder{startIdx: seg.StartIdx, endIdx: seg.EndIdx, dayIdxs: idxs})
	}
	return builders
}

// forcedExtend is C5. For each existing break, in order, it walks forward
// day-by-day from the break's current end, converting workdays to CTO
// until it hits a fixed-off day, a day already claimed by another break,
// or exhausts the remaining quota.
func forcedExtend(days []Day, owned []bool, builders []*breakBuilder, remaining *int) {
	for _, b := range builders {
		for *remaining > 0 {
			next := b.endIdx + 1
			if next >= len(days) {
				break
			}
			if owned[next] {
				break
			}
			if days[next].IsFixedOff() {
				break
			}

			days[next].IsCTO = true
			days[next].InBreak = true
			owned[next] = true
			b.dayIdxs = append(b.dayIdxs, next)
			b.endIdx = next
			*remaining--
		}
	}
}

// forcedFill is C6. It scans the calendar left to right; whenever it finds
// a maximal run of consecutive days not already in a break, and that run
// contains at least one workday, it spends quota converting the run's
// workdays to CTO (skipping any fixed-off days in place, without spending
// quota on them) until the run ends or quota reaches zero. Each such run
// that consumes at least one day of quota becomes a new break whose
// day list contains only the converted days, even though its start/end
// dates may span interstitial fixed-off days that were swept over.
func forcedFill(days []Day, owned []bool, remaining *int) []*breakBuilder {
	var created []*breakBuilder
	n := len(days)

	for i := 0; i < n && *remaining > 0; {
		if owned[i] {
			i++
			continue
		}

		// extent of the consecutive not-in-break run starting at i
		j := i
		for j < n && !owned[j] {
			j++
		}

		hasWorkday := false
		for k := i; k < j; k++ {
			if !days[k].IsFixedOff() {
				hasWorkday = true
				break
			}
		}
		if !hasWorkday {
			i = j
			continue
		}

		var added []int
		for k := i; k < j && *remaining > 0; k++ {
			if days[k].IsFixedOff() {
				continue
			}
			days[k].IsCTO = true
			days[k].InBreak = true
			owned[k] = true
			added = append(added, k)
			*remaining--
		}

		if len(added) > 0 {
			created = append(created, &breakBuilder{
				startIdx: added[0],
				endIdx:   added[len(added)-1],
				dayIdxs:  added,
				isFiller: true,
			})
		}

		i = j
	}

	return created
}

// applyForcedPasses runs C5 then C6 in a loop until quota is exhausted or a
// full round makes no progress, guaranteeing termination in at most
// remaining+1 iterations.
func applyForcedPasses(days []Day, owned []bool, builders []*breakBuilder, remaining int) ([]*breakBuilder, int) {
	for {
		before := remaining
		forcedExtend(days, owned, builders, &remaining)
		created := forcedFill(days, owned, &remaining)
		builders = append(builders, created...)

		if remaining == 0 || remaining == before {
			break
		}
	}
	return builders, remaining
}
