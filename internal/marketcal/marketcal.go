// Package marketcal answers whether the NYSE is trading on a given day.
package marketcal

import "time"

var eastern = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// Fall back to a fixed offset; only hits systems without tzdata.
		return time.FixedZone("ET", -5*3600)
	}
	return loc
}

// nearestWorkday shifts a fixed-date holiday off the weekend:
// Saturday observes on Friday, Sunday observes on Monday.
func nearestWorkday(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	}
	return d
}

// nthWeekday returns the n-th occurrence of a weekday in a month (n >= 1).
func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, eastern)
	offset := (int(weekday) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the final occurrence of a weekday in a month.
func lastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, eastern).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(weekday) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// easterSunday computes Gregorian Easter (anonymous algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, eastern)
}

// Holidays returns the NYSE full-day closures for a year.
func Holidays(year int) []time.Time {
	fixed := func(month time.Month, day int) time.Time {
		return nearestWorkday(time.Date(year, month, day, 0, 0, 0, 0, eastern))
	}
	return []time.Time{
		fixed(time.January, 1),                                // New Year's Day
		nthWeekday(year, time.January, time.Monday, 3),        // Martin Luther King Jr. Day
		nthWeekday(year, time.February, time.Monday, 3),       // Presidents' Day
		easterSunday(year).AddDate(0, 0, -2),                  // Good Friday
		lastWeekday(year, time.May, time.Monday),              // Memorial Day
		fixed(time.June, 19),                                  // Juneteenth
		fixed(time.July, 4),                                   // Independence Day
		nthWeekday(year, time.September, time.Monday, 1),      // Labor Day
		nthWeekday(year, time.November, time.Thursday, 4),     // Thanksgiving
		nearestWorkday(time.Date(year, time.December, 25, 0, 0, 0, 0, eastern)), // Christmas
	}
}

// IsHoliday reports whether the given time falls on an NYSE holiday (Eastern date).
func IsHoliday(t time.Time) bool {
	et := t.In(eastern)
	y, m, d := et.Date()
	for _, h := range Holidays(y) {
		hy, hm, hd := h.Date()
		if y == hy && m == hm && d == hd {
			return true
		}
	}
	return false
}

// IsTradingDay reports whether the NYSE trades on the given date (Eastern).
func IsTradingDay(t time.Time) bool {
	et := t.In(eastern)
	if wd := et.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !IsHoliday(et)
}

// IsMarketOpen reports whether the NYSE regular session (9:30-16:00 ET)
// is in progress at the given instant.
func IsMarketOpen(t time.Time) bool {
	et := t.In(eastern)
	if !IsTradingDay(et) {
		return false
	}
	open := time.Date(et.Year(), et.Month(), et.Day(), 9, 30, 0, 0, eastern)
	close := time.Date(et.Year(), et.Month(), et.Day(), 16, 0, 0, 0, eastern)
	return !et.Before(open) && !et.After(close)
}
