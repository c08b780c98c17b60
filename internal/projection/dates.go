package projection

import "time"

// MonthsBetween returns the number of whole calendar months elapsed from
// "from" to "to". The year/month difference is reduced by one when to's
// day-of-month precedes from's, so partial final months are truncated.
//
// Both instants are compared on the UTC calendar. The result is negative
// when to is before from. Month-end pairs under-count
// in short months (Jan 31 -> Feb 28 is 0 months); this is a known
// approximation and intentionally kept.
func MonthsBetween(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	months := int(to.Month()-from.Month()) + 12*(to.Year()-from.Year())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// AddMonths returns base moved by n calendar months. When the target month is
// shorter than base's day-of-month the result is clamped to that month's last
// day (Jan 31 + 1 month = Feb 28/29). Clock time and location are preserved.
func AddMonths(base time.Time, n int) time.Time {
	firstOfTarget := time.Date(base.Year(), base.Month()+time.Month(n), 1,
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())

	day := base.Day()
	if last := daysIn(firstOfTarget); day > last {
		day = last
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		base.Hour(), base.Minute(), base.Second(), base.Nanosecond(), base.Location())
}

// daysIn returns the number of days in t's month.
func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// YearOffset returns the evaluation point j years after now.
func YearOffset(now time.Time, j int) time.Time {
	return AddMonths(now, j*12)
}
