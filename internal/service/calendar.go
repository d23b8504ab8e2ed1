package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"jalaali-calendar-bot/internal/repository"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
)

// gregorianYearThreshold separates Gregorian input (yyyy-mm-dd with a year at
// or above it) from Jalaali input in Convert.
const gregorianYearThreshold = 1700

// MonthView is everything needed to draw one month of the date picker.
type MonthView struct {
	Year  int
	Month int
	Title string
	Grid  jalaali.MonthGrid
	// Holidays maps a day of month to its holiday title (possibly empty).
	Holidays map[int]string
	// Events maps a day of month to the number of the user's events.
	Events map[int]int
	// Today is the current day when the view shows the current month, else 0.
	Today int
}

type CalendarService struct {
	holidays repository.HolidayRepository
	events   repository.EventRepository
	location *time.Location
	now      func() time.Time
	logger   *logrus.Logger
}

func NewCalendarService(
	holidays repository.HolidayRepository,
	events repository.EventRepository,
	location *time.Location,
	logger *logrus.Logger,
) *CalendarService {
	if location == nil {
		location = time.Local
	}
	return &CalendarService{
		holidays: holidays,
		events:   events,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Today returns the current Jalaali date in the configured location.
func (s *CalendarService) Today() jalaali.Date {
	d, err := jalaali.ToJalaali(s.now().In(s.location))
	if err != nil {
		s.logger.WithError(err).Error("Current time is outside the calendar range")
		return jalaali.Date{Year: jalaali.MinYear, Month: 1, Day: 1}
	}
	return d
}

// MonthView builds the grid of jy/jm annotated with holidays and the events
// of userID. A zero userID skips events.
func (s *CalendarService) MonthView(userID uint, jy, jm int) (*MonthView, error) {
	grid, err := jalaali.BuildMonthGrid(jy, jm)
	if err != nil {
		return nil, err
	}
	name, err := jalaali.MonthName(jm)
	if err != nil {
		return nil, err
	}

	view := &MonthView{
		Year:     jy,
		Month:    jm,
		Title:    name + " " + jalaali.ToPersianDigits(jy),
		Grid:     grid,
		Holidays: make(map[int]string),
		Events:   make(map[int]int),
	}

	holidays, err := s.holidays.GetByJalaaliMonth(jy, jm)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays: %w", err)
	}
	for _, h := range holidays {
		view.Holidays[h.JDay] = h.Title
	}

	if userID != 0 {
		events, err := s.events.GetByUserMonth(userID, jy, jm)
		if err != nil {
			return nil, fmt.Errorf("failed to get events: %w", err)
		}
		for _, e := range events {
			view.Events[e.JDay]++
		}
	}

	if today := s.Today(); today.Year == jy && today.Month == jm {
		view.Today = today.Day
	}

	s.logger.WithFields(logrus.Fields{
		"year":     jy,
		"month":    jm,
		"holidays": len(view.Holidays),
		"events":   len(view.Events),
	}).Debug("Month view built")

	return view, nil
}

// DayReport describes day d: Persian date, weekday, Gregorian date, holiday
// and the events of userID.
func (s *CalendarService) DayReport(userID uint, d jalaali.Date) (string, error) {
	persian, err := d.Persian()
	if err != nil {
		return "", err
	}
	g, err := d.Time(time.UTC)
	if err != nil {
		return "", err
	}
	wd, err := jalaali.Weekday(d)
	if err != nil {
		return "", err
	}
	wdName, err := jalaali.WeekDayName(wd)
	if err != nil {
		return "", err
	}

	lines := []string{
		fmt.Sprintf("📅 %s، %s", wdName, persian),
		fmt.Sprintf("🗓 %s", jalaali.PersianDigits(d.String())),
		fmt.Sprintf("🌐 %s", g.Format("2006-01-02 (Monday)")),
	}

	holiday, err := s.holidays.GetByDate(d)
	if err != nil {
		return "", fmt.Errorf("failed to get holiday: %w", err)
	}
	if holiday != nil {
		text := "🎉 تعطیل رسمی"
		if holiday.Title != "" {
			text += ": " + holiday.Title
		}
		lines = append(lines, text)
	} else if wd == 6 {
		lines = append(lines, "🌙 جمعه")
	}

	if userID != 0 {
		events, err := s.events.GetByUserDate(userID, d)
		if err != nil {
			return "", fmt.Errorf("failed to get events: %w", err)
		}
		if len(events) > 0 {
			lines = append(lines, "", "📌 رویدادها:")
			for _, e := range events {
				lines = append(lines, fmt.Sprintf("#%d %s", e.ID, e.Title))
			}
		}
	}

	return strings.Join(lines, "\n"), nil
}

// Convert reads a date in either calendar and renders it in the other.
// yyyy-mm-dd with a year of 1700 or later is Gregorian; anything else is
// parsed as a Jalaali yyyy/mm/dd.
func (s *CalendarService) Convert(input string) (string, error) {
	normalized := strings.TrimSpace(jalaali.NormalizeDigits(input))

	if gy, gm, gd, ok := parseGregorian(normalized); ok {
		d, err := jalaali.GregorianToJalaali(gy, gm, gd)
		if err != nil {
			return "", err
		}
		persian, err := d.Persian()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%04d-%02d-%02d = %s (%s)", gy, gm, gd, jalaali.PersianDigits(d.String()), persian), nil
	}

	d, err := jalaali.ParseDate(normalized)
	if err != nil {
		return "", err
	}
	g, err := d.Time(time.UTC)
	if err != nil {
		return "", err
	}
	persian, err := d.Persian()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%s) = %s", jalaali.PersianDigits(d.String()), persian, g.Format("2006-01-02")), nil
}

func parseGregorian(s string) (int, int, int, bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		fields[i] = v
	}
	if fields[0] < gregorianYearThreshold {
		return 0, 0, 0, false
	}
	return fields[0], fields[1], fields[2], true
}
