// Package holidays reads official holiday calendars published per Jalaali
// year and resolves them to Gregorian dates.
package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"jalaali-calendar-bot/pkg/jalaali"
)

// HolidayJSON is the on-disk layout of a holiday file.
type HolidayJSON struct {
	Year   int               `json:"year"`
	Months []MonthHolidays   `json:"months"`
	Titles map[string]string `json:"titles"`
}

// MonthHolidays lists the holidays of one month as a comma separated string,
// e.g. "1,2,3,4,12,13". Trailing "*" or "+" markers on a day are ignored.
type MonthHolidays struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

// Holiday is a single resolved holiday.
type Holiday struct {
	Jalaali jalaali.Date
	Date    time.Time
	Title   string
}

// ParseFile reads and parses a holiday file.
func ParseFile(filePath string) ([]Holiday, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read holidays file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a holiday file. Every day is validated against the Jalaali
// calendar; the first invalid entry aborts parsing.
func Parse(data []byte) ([]Holiday, error) {
	var doc HolidayJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal holidays JSON: %w", err)
	}
	if doc.Year < jalaali.MinYear || doc.Year > jalaali.MaxYear {
		return nil, fmt.Errorf("holidays file: %w: year %d", jalaali.ErrInvalidDateRange, doc.Year)
	}

	titles := make(map[jalaali.Date]string, len(doc.Titles))
	for key, title := range doc.Titles {
		d, err := parseTitleKey(doc.Year, key)
		if err != nil {
			return nil, err
		}
		titles[d] = strings.TrimSpace(title)
	}

	seen := make(map[jalaali.Date]bool)
	result := []Holiday{}

	for _, m := range doc.Months {
		for _, token := range strings.Split(m.Days, ",") {
			token = strings.TrimSpace(jalaali.NormalizeDigits(token))
			token = strings.TrimRight(token, "*+")
			if token == "" {
				continue
			}

			day, err := strconv.Atoi(token)
			if err != nil {
				return nil, fmt.Errorf("failed to parse day %q in month %d: %w", token, m.Month, err)
			}

			jd := jalaali.Date{Year: doc.Year, Month: m.Month, Day: day}
			g, err := jd.Time(time.UTC)
			if err != nil {
				return nil, fmt.Errorf("holiday %s: %w", jd, err)
			}
			if seen[jd] {
				return nil, fmt.Errorf("holiday %s listed twice", jd)
			}
			seen[jd] = true

			result = append(result, Holiday{Jalaali: jd, Date: g, Title: titles[jd]})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// parseTitleKey reads a "month/day" title key.
func parseTitleKey(year int, key string) (jalaali.Date, error) {
	parts := strings.Split(jalaali.NormalizeDigits(strings.TrimSpace(key)), "/")
	if len(parts) != 2 {
		return jalaali.Date{}, fmt.Errorf("invalid title key %q: expected month/day", key)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return jalaali.Date{}, fmt.Errorf("invalid title key %q: %w", key, err)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return jalaali.Date{}, fmt.Errorf("invalid title key %q: %w", key, err)
	}

	d := jalaali.Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return jalaali.Date{}, fmt.Errorf("title key %q: %w", key, err)
	}
	return d, nil
}
