package jalaali

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [12]string{
	"فروردین", "اردیبهشت", "خرداد",
	"تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر",
	"دی", "بهمن", "اسفند",
}

var weekDayLabels = [7]string{"ش", "ی", "د", "س", "چ", "پ", "ج"}

var weekDayNames = [7]string{"شنبه", "یکشنبه", "دوشنبه", "سه‌شنبه", "چهارشنبه", "پنجشنبه", "جمعه"}

// ToPersianDigits writes n in decimal with Persian digits. A minus sign is
// kept as is.
func ToPersianDigits(n int) string {
	return PersianDigits(strconv.Itoa(n))
}

// PersianDigits replaces every ASCII digit in s with its Persian glyph.
func PersianDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return '۰' + (r - '0')
		}
		return r
	}, s)
}

// NormalizeDigits replaces Persian and Arabic-Indic digits in s with ASCII.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹':
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩':
			return '0' + (r - '٠')
		}
		return r
	}, s)
}

// MonthName returns the Persian name of month jm.
func MonthName(jm int) (string, error) {
	if jm < 1 || jm > 12 {
		return "", fmt.Errorf("%w: %d", ErrInvalidMonth, jm)
	}
	return monthNames[jm-1], nil
}

// WeekDays returns the weekday column labels, Saturday first.
func WeekDays() [7]string {
	return weekDayLabels
}

// WeekDayName returns the full Persian name of a Saturday-based weekday.
func WeekDayName(i int) (string, error) {
	if i < 0 || i > 6 {
		return "", fmt.Errorf("weekday index %d out of range", i)
	}
	return weekDayNames[i], nil
}

// Persian renders d as "{day} {month name} {year}" with Persian digits,
// e.g. "۱ فروردین ۱۴۰۳".
func (d Date) Persian() (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	return ToPersianDigits(d.Day) + " " + monthNames[d.Month-1] + " " + ToPersianDigits(d.Year), nil
}

// FormatDate converts t to Jalaali and renders it like Date.Persian.
func FormatDate(t time.Time) (string, error) {
	d, err := ToJalaali(t)
	if err != nil {
		return "", err
	}
	return d.Persian()
}

// ParseDate reads a Jalaali date written as yyyy/mm/dd. Dashes and dots are
// accepted as separators, and so are Persian or Arabic-Indic digits. The
// result is validated; out-of-range days are rejected, not clamped.
func ParseDate(s string) (Date, error) {
	parts := strings.FieldsFunc(NormalizeDigits(strings.TrimSpace(s)), func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q is not yyyy/mm/dd", ErrInvalidDate, s)
	}

	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return Date{}, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
		}
		fields[i] = v
	}

	d := Date{Year: fields[0], Month: fields[1], Day: fields[2]}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseYearMonth reads yyyy/mm, with the same separators and digits as
// ParseDate.
func ParseYearMonth(s string) (int, int, error) {
	parts := strings.FieldsFunc(NormalizeDigits(strings.TrimSpace(s)), func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q is not yyyy/mm", ErrInvalidDate, s)
	}
	jy, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	jm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidDate, s, err)
	}
	if jm < 1 || jm > 12 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidMonth, jm)
	}
	if jy < MinYear || jy > MaxYear {
		return 0, 0, fmt.Errorf("%w: year %d", ErrInvalidDateRange, jy)
	}
	return jy, jm, nil
}
