package jalaali

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPersianDigits(t *testing.T) {
	cases := []struct {
		input    int
		expected string
	}{
		{0, "۰"},
		{7, "۷"},
		{1403, "۱۴۰۳"},
		{1234567890, "۱۲۳۴۵۶۷۸۹۰"},
		{-12, "-۱۲"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, ToPersianDigits(c.input))
	}
}

func TestNormalizeDigits(t *testing.T) {
	assert.Equal(t, "1403/01/01", NormalizeDigits("۱۴۰۳/۰۱/۰۱"))
	assert.Equal(t, "1403/01/01", NormalizeDigits("١٤٠٣/٠١/٠١"))
	assert.Equal(t, "abc 42", NormalizeDigits("abc 42"))
	assert.Equal(t, "1403", NormalizeDigits(PersianDigits("1403")))
}

func TestMonthName(t *testing.T) {
	name, err := MonthName(1)
	require.NoError(t, err)
	assert.Equal(t, "فروردین", name)

	name, err = MonthName(12)
	require.NoError(t, err)
	assert.Equal(t, "اسفند", name)

	for _, jm := range []int{0, 13, -5} {
		_, err := MonthName(jm)
		assert.ErrorIs(t, err, ErrInvalidMonth)
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays()
	assert.Equal(t, [7]string{"ش", "ی", "د", "س", "چ", "پ", "ج"}, days)

	days[0] = "x"
	assert.Equal(t, "ش", WeekDays()[0], "WeekDays must return a copy")
}

func TestWeekDayName(t *testing.T) {
	name, err := WeekDayName(0)
	require.NoError(t, err)
	assert.Equal(t, "شنبه", name)

	name, err = WeekDayName(6)
	require.NoError(t, err)
	assert.Equal(t, "جمعه", name)

	_, err = WeekDayName(7)
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	cases := []struct {
		input    time.Time
		expected string
	}{
		{gdate(2024, time.March, 20), "۱ فروردین ۱۴۰۳"},
		{gdate(2025, time.March, 20), "۳۰ اسفند ۱۴۰۳"},
		{gdate(1979, time.February, 11), "۲۲ بهمن ۱۳۵۷"},
		{gdate(2024, time.September, 22), "۱ مهر ۱۴۰۳"},
	}

	for _, c := range cases {
		got, err := FormatDate(c.input)
		require.NoError(t, err)
		assert.Equal(t, c.expected, got)
	}
}

func TestFormatDate_PropagatesRangeError(t *testing.T) {
	_, err := FormatDate(gdate(600, time.January, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		input    string
		expected Date
	}{
		{"1403/01/01", Date{1403, 1, 1}},
		{"1403/1/1", Date{1403, 1, 1}},
		{" 1403-12-30 ", Date{1403, 12, 30}},
		{"۱۴۰۳/۰۷/۱۵", Date{1403, 7, 15}},
		{"1357.11.22", Date{1357, 11, 22}},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			got, err := ParseDate(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.expected, got)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	cases := []struct {
		input    string
		expected error
	}{
		{"", ErrInvalidDate},
		{"1403/01", ErrInvalidDate},
		{"1403/aa/01", ErrInvalidDate},
		{"1404/12/30", ErrInvalidDate},
		{"1403/07/31", ErrInvalidDate},
		{"1403/13/01", ErrInvalidMonth},
		{"0/01/01", ErrInvalidDateRange},
	}

	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			_, err := ParseDate(c.input)
			assert.ErrorIs(t, err, c.expected)
		})
	}
}

func TestParseYearMonth(t *testing.T) {
	jy, jm, err := ParseYearMonth("۱۴۰۳/۱۲")
	require.NoError(t, err)
	assert.Equal(t, 1403, jy)
	assert.Equal(t, 12, jm)

	_, _, err = ParseYearMonth("1403/13")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, _, err = ParseYearMonth("1403")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_StringAndPersian(t *testing.T) {
	d := Date{1403, 1, 1}
	assert.Equal(t, "1403/01/01", d.String())

	p, err := d.Persian()
	require.NoError(t, err)
	assert.Equal(t, "۱ فروردین ۱۴۰۳", p)

	_, err = Date{1403, 0, 1}.Persian()
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
