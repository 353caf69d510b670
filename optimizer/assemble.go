package optimizer

import "sort"

// Optimize is the engine's single invocation surface: sequence C1 through
// C7 and hand back the annotated day array, the break list, and rolled-up
// stats. Pure and synchronous — no I/O, no goroutines.
func Optimize(params Params) Result {
	strategy := params.Strategy.normalize()
	quota := params.NumberOfDays
	if quota < 0 {
		quota = 0
	}

	days := buildCalendar(params) // C1

	candidates := generateCandidatesForStrategy(days, strategy) // C2
	pruned := pruneCandidates(candidates, quota)                // C3

	spacing := strategySpacing[strategy]
	chosen := searchBest(pruned, quota, spacing) // C4

	owned := make([]bool, len(days))
	builders := markChosenSegments(days, owned, chosen.segments)

	remaining := quota - chosen.quotaSpent
	builders, _ = applyForcedPasses(days, owned, builders, remaining) // C5 + C6

	breaks := assembleBreaks(days, builders)
	sort.SliceStable(breaks, func(i, j int) bool {
		return breaks[i].StartDate.Before(breaks[j].StartDate)
	})

	stats := computeStats(breaks) // C7

	return Result{Days: days, Breaks: breaks, Stats: stats}
}

// assembleBreaks converts breakBuilders into public Break records. A
// break's TotalDays is defined, per spec, as the sum of its four category
// counters rather than the raw length of its day list — a day that is
// simultaneously (say) a public holiday and a weekend contributes to both
// counters, so the sum can exceed the day count on overlapping fixed-off
// days. This is intentional and mirrors the source's counting rule.
func assembleBreaks(days []Day, builders []*breakBuilder) []Break {
	out := make([]Break, 0, len(builders))
	for _, b := range builders {
		if len(b.dayIdxs) == 0 {
			continue
		}

		brk := Break{
			StartDate: days[b.dayIdxs[0]].Date,
			EndDate:   days[b.dayIdxs[len(b.dayIdxs)-1]].Date,
		}
		brk.Days = make([]Day, 0, len(b.dayIdxs))
		for _, idx := range b.dayIdxs {
			d := days[idx]
			brk.Days = append(brk.Days, d)
			if d.IsCTO {
				brk.CTODays++
			}
			if d.IsPublicHoliday {
				brk.PublicHolidays++
			}
			if d.IsWeekend {
				brk.Weekends++
			}
			if d.IsCompanyOff {
				brk.CompanyDaysOff++
			}
		}
		brk.TotalDays = brk.CTODays + brk.PublicHolidays + brk.Weekends + brk.CompanyDaysOff
		out = append(out, brk)
	}
	return out
}

// computeStats is C7's rollup: sum per-break counters into the Stats
// record. TotalExtendedWeekends duplicates TotalCTODays; see DESIGN.md.
func computeStats(breaks []Break) Stats {
	var s Stats
	for _, b := range breaks {
		s.TotalCTODays += b.CTODays
		s.TotalPublicHolidays += b.PublicHolidays
		s.TotalWeekends += b.Weekends
		s.TotalCompanyDaysOff += b.CompanyDaysOff
		s.TotalDaysOff += b.TotalDays
	}
	s.TotalExtendedWeekends = s.TotalCTODays
	return s
}
