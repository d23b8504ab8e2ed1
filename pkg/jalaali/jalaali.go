// Package jalaali converts between the Gregorian and the Jalaali (Persian,
// Solar Hijri) calendars and builds Saturday-first month grids for calendar
// widgets.
//
// Conversions go through Julian Day Numbers and use the breakpoint table of
// the jalaali-js family of implementations, so leap years follow the
// astronomical observations rather than the 33-year approximation. All
// functions are pure and safe for concurrent use.
package jalaali

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidDateRange is returned for dates outside the supported range:
	// Jalaali 1/1/1 (622-03-22) to the last day of MaxYear.
	ErrInvalidDateRange = errors.New("date out of supported range")
	// ErrInvalidMonth is returned for a month index outside 1..12.
	ErrInvalidMonth = errors.New("invalid month")
	// ErrInvalidDate is returned for a day that does not exist in its month.
	ErrInvalidDate = errors.New("invalid date")
)

// Supported Jalaali years. The breakpoint table ends at 3178 and converting
// the last days of a year needs the table entry of the year after it.
const (
	MinYear = 1
	MaxYear = 3176
)

// Date is a day in the Jalaali calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// String renders the date as yyyy/mm/dd with ASCII digits.
func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Validate reports whether the date exists in the supported range.
func (d Date) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, d.Month)
	}
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: year %d", ErrInvalidDateRange, d.Year)
	}
	n, err := MonthLength(d.Year, d.Month)
	if err != nil {
		return err
	}
	if d.Day < 1 || d.Day > n {
		return fmt.Errorf("%w: day %d of %d/%02d (month has %d days)", ErrInvalidDate, d.Day, d.Year, d.Month, n)
	}
	return nil
}

// Time returns midnight of the corresponding Gregorian day in loc.
func (d Date) Time(loc *time.Location) (time.Time, error) {
	gy, gm, gd, err := JalaaliToGregorian(d.Year, d.Month, d.Day)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, loc), nil
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// IsLeapYear reports whether Esfand of jy has 30 days. Years outside the
// breakpoint table are reported as common years.
func IsLeapYear(jy int) bool {
	info, err := jalCal(jy)
	if err != nil {
		return false
	}
	return info.leap == 0
}

// MonthLength returns the number of days in month jm of year jy.
func MonthLength(jy, jm int) (int, error) {
	if jm < 1 || jm > 12 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, jm)
	}
	switch {
	case jm <= 6:
		return 31, nil
	case jm <= 11:
		return 30, nil
	}
	info, err := jalCal(jy)
	if err != nil {
		return 0, err
	}
	if info.leap == 0 {
		return 30, nil
	}
	return 29, nil
}

// ShiftMonth moves (jy, jm) by delta months, carrying into the year.
func ShiftMonth(jy, jm, delta int) (int, int) {
	idx := jy*12 + (jm - 1) + delta
	y, m := idx/12, idx%12
	if m < 0 {
		m += 12
		y--
	}
	return y, m + 1
}
