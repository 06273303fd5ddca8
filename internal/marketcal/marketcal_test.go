package marketcal

import (
	"testing"
	"time"
)

func et(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, eastern)
}

func TestHolidays2024(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
	}{
		{"New Years Day", et(2024, time.January, 1, 12, 0)},
		{"MLK Day", et(2024, time.January, 15, 12, 0)},
		{"Presidents Day", et(2024, time.February, 19, 12, 0)},
		{"Good Friday", et(2024, time.March, 29, 12, 0)},
		{"Memorial Day", et(2024, time.May, 27, 12, 0)},
		{"Juneteenth", et(2024, time.June, 19, 12, 0)},
		{"Independence Day", et(2024, time.July, 4, 12, 0)},
		{"Labor Day", et(2024, time.September, 2, 12, 0)},
		{"Thanksgiving", et(2024, time.November, 28, 12, 0)},
		{"Christmas", et(2024, time.December, 25, 12, 0)},
	}
	for _, tc := range cases {
		if !IsHoliday(tc.date) {
			t.Errorf("%s (%s) not detected as holiday", tc.name, tc.date.Format("2006-01-02"))
		}
		if IsTradingDay(tc.date) {
			t.Errorf("%s should not be a trading day", tc.name)
		}
	}
}

func TestObservedHolidayShifts(t *testing.T) {
	// July 4, 2021 fell on a Sunday; observed Monday July 5.
	if !IsHoliday(et(2021, time.July, 5, 12, 0)) {
		t.Error("July 5, 2021 should be the observed Independence Day")
	}
	// The actual Sunday is already a non-trading day.
	if IsTradingDay(et(2021, time.July, 4, 12, 0)) {
		t.Error("Sunday July 4, 2021 should not be a trading day")
	}
}

func TestWeekendsAndOrdinaryDays(t *testing.T) {
	if IsTradingDay(et(2024, time.June, 8, 12, 0)) {
		t.Error("Saturday should not be a trading day")
	}
	if IsTradingDay(et(2024, time.June, 9, 12, 0)) {
		t.Error("Sunday should not be a trading day")
	}
	if !IsTradingDay(et(2024, time.June, 5, 12, 0)) {
		t.Error("Wednesday June 5, 2024 should be a trading day")
	}
}

func TestMarketHours(t *testing.T) {
	cases := []struct {
		when time.Time
		open bool
	}{
		{et(2024, time.June, 5, 9, 29), false},
		{et(2024, time.June, 5, 9, 30), true},
		{et(2024, time.June, 5, 12, 0), true},
		{et(2024, time.June, 5, 16, 0), true},
		{et(2024, time.June, 5, 16, 1), false},
		{et(2024, time.June, 8, 12, 0), false}, // Saturday
		{et(2024, time.July, 4, 12, 0), false}, // holiday
	}
	for _, tc := range cases {
		if got := IsMarketOpen(tc.when); got != tc.open {
			t.Errorf("IsMarketOpen(%s) = %v, want %v", tc.when.Format("2006-01-02 15:04"), got, tc.open)
		}
	}
}

func TestIsHolidayHandlesOtherZones(t *testing.T) {
	// Midnight UTC on July 5 is still July 4 evening in New York.
	utc := time.Date(2024, time.July, 4, 20, 0, 0, 0, time.UTC)
	if !IsHoliday(utc) {
		t.Error("UTC instant during Eastern July 4 should count as holiday")
	}
}
