/*
Package optimizer plans a year's paid-time-off calendar.

PURPOSE:
  Given a quota of discretionary off-days ("CTO days"), a style preference,
  a set of public holidays and company-provided days off, it picks which
  workdays to burn so the resulting contiguous runs of non-working days
  ("breaks") maximise total days off and conform to the chosen style.

PIPELINE:
  Optimize() sequences seven components, strictly in order, with no
  internal concurrency:

    C1 Calendar Builder   materialise the year as an ordered []Day
    C2 Candidate Generator enumerate contiguous windows and score them
    C3 Dominance Pruner    drop candidates provably inferior to a same-start peer
    C4 DP Search           pick a spaced, non-overlapping, quota-respecting subset
    C5 Forced Extension    greedily extend chosen breaks while quota remains
    C6 Forced Filler       spend any remaining quota on brand new single breaks
    C7 Statistics+Assembly annotate, sort, roll up totals

  This is a pure, synchronous function: no I/O, no goroutines, no shared
  state beyond the call-local day slice.

SEE ALSO:
  - calendar.go, candidates.go, dominance.go, search.go, forced.go, assemble.go
*/
package optimizer

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// STRATEGY
// =============================================================================

// Strategy is the style preference driving window sizes and spacing.
type Strategy string

const (
	StrategyBalanced           Strategy = "balanced"
	StrategyLongWeekends       Strategy = "longWeekends"
	StrategyMiniBreaks         Strategy = "miniBreaks"
	StrategyWeekLongBreaks     Strategy = "weekLongBreaks"
	StrategyExtendedVacations  Strategy = "extendedVacations"
)

// normalize maps any unrecognised strategy string to balanced, per spec.
func (s Strategy) normalize() Strategy {
	switch s {
	case StrategyLongWeekends, StrategyMiniBreaks, StrategyWeekLongBreaks, StrategyExtendedVacations, StrategyBalanced:
		return s
	default:
		return StrategyBalanced
	}
}

// window is a (min, max) contiguous-length range fed to the candidate generator.
type window struct {
	min, max int
}

// spacing is the minimum number of days required between the end of one
// chosen candidate and the start of the next, per strategy.
var strategySpacing = map[Strategy]int{
	StrategyLongWeekends:      7,
	StrategyMiniBreaks:        14,
	StrategyWeekLongBreaks:    21,
	StrategyExtendedVacations: 30,
	StrategyBalanced:          21,
}

// windows returns the (min,max) length windows C2 must be run with for a strategy.
// Balanced is the union of the other four, run and concatenated before pruning.
func (s Strategy) windows() []window {
	switch s {
	case StrategyLongWeekends:
		return []window{{3, 4}}
	case StrategyMiniBreaks:
		return []window{{5, 6}}
	case StrategyWeekLongBreaks:
		return []window{{7, 9}}
	case StrategyExtendedVacations:
		return []window{{10, 15}}
	default: // balanced
		return []window{{3, 4}, {5, 6}, {7, 9}, {10, 15}}
	}
}

// =============================================================================
// DAY
// =============================================================================

// Day is one position in the planning horizon.
type Day struct {
	Date            time.Time
	IsWeekend       bool
	IsPublicHoliday bool
	HolidayName     string
	IsCompanyOff    bool
	CompanyName     string
	IsCTO           bool
	InBreak         bool
}

// IsFixedOff reports whether the day is already non-working (weekend,
// public holiday, or company-provided day off) and therefore free.
func (d Day) IsFixedOff() bool {
	return d.IsWeekend || d.IsPublicHoliday || d.IsCompanyOff
}

// =============================================================================
// INPUTS
// =============================================================================

// Holiday is a single named public holiday.
type Holiday struct {
	Date time.Time
	Name string
}

// CompanyOffRule is either a single dated day off or a recurring weekday
// rule over a closed date interval. Exactly one of the two shapes applies,
// selected by IsRecurring — a tagged variant with two cases, per the
// original system's dynamically-typed company-off entry.
type CompanyOffRule struct {
	IsRecurring bool
	Name        string

	// Single-date case (IsRecurring == false)
	Date time.Time

	// Recurring case (IsRecurring == true): every occurrence of Weekday
	// within [Start, End] inclusive. time.Weekday: Sunday == 0.
	Weekday time.Weekday
	Start   time.Time
	End     time.Time
}

// Matches reports whether the rule covers date d.
func (r CompanyOffRule) Matches(d time.Time) bool {
	if r.IsRecurring {
		if r.Start.After(r.End) {
			return false // inverted interval matches nothing
		}
		return !d.Before(r.Start) && !d.After(r.End) && d.Weekday() == r.Weekday
	}
	return sameDate(r.Date, d)
}

// Params configures a single Optimize call.
type Params struct {
	NumberOfDays   int
	Strategy       Strategy
	Year           int // 0 => current year
	Holidays       []Holiday
	CompanyDaysOff []CompanyOffRule
	Today          time.Time // stands in for the current date (its year is the current year); zero => time.Now()
}

// =============================================================================
// CANDIDATE SEGMENT
// =============================================================================

// CandidateSegment is a contiguous window proposed to the DP search.
type CandidateSegment struct {
	StartIdx   int
	EndIdx     int
	TotalDays  int
	CTOUsed    int
	Efficiency decimal.Decimal // TotalDays / CTOUsed, informational only
}

func newCandidateSegment(startIdx, endIdx, ctoUsed int) CandidateSegment {
	total := endIdx - startIdx + 1
	eff := decimal.NewFromInt(int64(total)).DivRound(decimal.NewFromInt(int64(ctoUsed)), 4)
	return CandidateSegment{
		StartIdx:   startIdx,
		EndIdx:     endIdx,
		TotalDays:  total,
		CTOUsed:    ctoUsed,
		Efficiency: eff,
	}
}

// =============================================================================
// BREAK
// =============================================================================

// Break is a realised contiguous run of off-days in the final plan.
type Break struct {
	StartDate      time.Time
	EndDate        time.Time
	Days           []Day
	TotalDays      int
	CTODays        int
	PublicHolidays int
	Weekends       int
	CompanyDaysOff int
}

// =============================================================================
// STATS
// =============================================================================

// Stats rolls totals up from the final break list.
type Stats struct {
	TotalCTODays            int
	TotalPublicHolidays     int
	TotalWeekends           int
	TotalCompanyDaysOff     int
	TotalDaysOff            int
	// TotalExtendedWeekends duplicates TotalCTODays. The name suggests a
	// different metric but the source computes it this way; kept
	// bug-compatible per spec (see DESIGN.md open question #1).
	TotalExtendedWeekends int
}

// =============================================================================
// RESULT
// =============================================================================

// Result is everything Optimize hands back.
type Result struct {
	Days   []Day
	Breaks []Break
	Stats  Stats
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func truncDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
