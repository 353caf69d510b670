/*
scenarios.go - Demo scenario catalogue and default holiday sets

PURPOSE:
  Ships a small fixed catalogue of demo scenarios so the API (and anyone
  driving it, e.g. a frontend or the CLI) can showcase the optimizer without
  needing to construct Params by hand. Also provides a built-in US federal
  holiday generator for POST /api/holidays/defaults.

AVAILABLE SCENARIOS:
  us-federal-holidays: US federal holidays, 15 days, balanced
  long-weekends-only:  No holidays, 10 days, long weekends only
  saturate-the-year:   Generous quota that exhausts every workday

HOW SCENARIOS WORK:
  Each scenario is a canned optimizer.Params. RunScenario calls Optimize
  directly -- no store interaction, no persistence -- so scenarios are
  cheap, repeatable demos.

ADDING NEW SCENARIOS:
  1. Add an entry to the scenarios slice with a unique ID.
  2. No further wiring needed -- ListScenarios/GetScenario/RunScenario all
     read from the same slice.

SEE ALSO:
  - handlers.go: ListScenarios, GetScenario, RunScenario handlers
*/
package api

import (
	"time"

	"github.com/warp/cto-planner/optimizer"
)

// scenario pairs a demo's metadata with the canned Params RunScenario
// executes.
type scenario struct {
	ID          string
	Name        string
	Description string
	Params      optimizer.Params
}

var scenarios = []scenario{
	{
		ID:          "us-federal-holidays",
		Name:        "US Federal Holidays",
		Description: "15 CTO days, balanced strategy, full US federal holiday calendar",
		Params: optimizer.Params{
			NumberOfDays: 15,
			Strategy:     optimizer.StrategyBalanced,
			Year:         time.Now().Year(),
			Holidays:     defaultUSHolidays(time.Now().Year()),
		},
	},
	{
		ID:          "long-weekends-only",
		Name:        "Long Weekends Only",
		Description: "10 CTO days, no holidays, long-weekends strategy",
		Params: optimizer.Params{
			NumberOfDays: 10,
			Strategy:     optimizer.StrategyLongWeekends,
			Year:         time.Now().Year(),
		},
	},
	{
		ID:          "saturate-the-year",
		Name:        "Saturate The Year",
		Description: "300 CTO days, no holidays, balanced -- exhausts every workday",
		Params: optimizer.Params{
			NumberOfDays: 300,
			Strategy:     optimizer.StrategyBalanced,
			Year:         time.Now().Year(),
		},
	},
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// defaultUSHolidays returns the fixed and floating US federal holidays for
// a given year. This is a convenience seed set, not an authoritative
// calendar -- observed-date shifting for weekend holidays is intentionally
// not applied, matching how the optimizer treats a "holiday" as a plain
// calendar date.
func defaultUSHolidays(year int) []optimizer.Holiday {
	return []optimizer.Holiday{
		{Date: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), Name: "New Year's Day"},
		{Date: nthWeekday(year, time.January, time.Monday, 3), Name: "Martin Luther King Jr. Day"},
		{Date: nthWeekday(year, time.February, time.Monday, 3), Name: "Washington's Birthday"},
		{Date: lastWeekday(year, time.May, time.Monday), Name: "Memorial Day"},
		{Date: time.Date(year, time.June, 19, 0, 0, 0, 0, time.UTC), Name: "Juneteenth"},
		{Date: time.Date(year, time.July, 4, 0, 0, 0, 0, time.UTC), Name: "Independence Day"},
		{Date: nthWeekday(year, time.September, time.Monday, 1), Name: "Labor Day"},
		{Date: nthWeekday(year, time.October, time.Monday, 2), Name: "Columbus Day"},
		{Date: time.Date(year, time.November, 11, 0, 0, 0, 0, time.UTC), Name: "Veterans Day"},
		{Date: nthWeekday(year, time.November, time.Thursday, 4), Name: "Thanksgiving Day"},
		{Date: time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC), Name: "Christmas Day"},
	}
}

// nthWeekday returns the date of the n-th occurrence of weekday in month.
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	d = d.AddDate(0, 0, offset+7*(n-1))
	return d
}

// lastWeekday returns the date of the final occurrence of weekday in month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}
