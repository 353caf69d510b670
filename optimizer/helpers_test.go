package optimizer

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// plainWeek builds n consecutive Day entries starting at start, with
// IsWeekend set for Saturday/Sunday and no holidays or company days off.
func plainWeek(start time.Time, n int) []Day {
	days := make([]Day, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		wd := d.Weekday()
		days[i] = Day{
			Date:      d,
			IsWeekend: wd == time.Saturday || wd == time.Sunday,
		}
	}
	return days
}
