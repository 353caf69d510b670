package optimizer

import "time"

// buildCalendar is C1. It materialises the planning horizon as an ordered
// []Day covering [startDate, Dec 31 of year] inclusive, where startDate is
// "today" when year equals the current year, otherwise Jan 1 of year.
func buildCalendar(p Params) []Day {
	year := p.Year
	now := p.Today
	if now.IsZero() {
		now = time.Now()
	}
	now = truncDate(now)
	if year == 0 {
		year = now.Year()
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	if year == now.Year() {
		start = now
	}
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		day := Day{
			Date:      d,
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		}

		if name, ok := lookupHoliday(p.Holidays, d); ok {
			day.IsPublicHoliday = true
			day.HolidayName = name
		}

		if name, ok := lookupCompanyOff(p.CompanyDaysOff, d); ok {
			day.IsCompanyOff = true
			day.CompanyName = name
		}

		days = append(days, day)
	}
	return days
}

// lookupHoliday scans the holiday list for an exact date match. First match wins.
func lookupHoliday(holidays []Holiday, d time.Time) (string, bool) {
	for _, h := range holidays {
		if sameDate(h.Date, d) {
			return h.Name, true
		}
	}
	return "", false
}

// lookupCompanyOff scans the company-off rules for a match. First match wins.
func lookupCompanyOff(rules []CompanyOffRule, d time.Time) (string, bool) {
	for _, r := range rules {
		if r.Matches(d) {
			return r.Name, true
		}
	}
	return "", false
}
