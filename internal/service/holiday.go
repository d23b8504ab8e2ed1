package service

import (
	"fmt"
	"strings"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/repository"
	"jalaali-calendar-bot/pkg/holidays"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
)

type HolidayService struct {
	repo   repository.HolidayRepository
	logger *logrus.Logger
}

func NewHolidayService(repo repository.HolidayRepository, logger *logrus.Logger) *HolidayService {
	return &HolidayService{repo: repo, logger: logger}
}

// LoadFromFile replaces the holidays of the file's year with its contents.
func (s *HolidayService) LoadFromFile(filePath string) (int, error) {
	parsed, err := holidays.ParseFile(filePath)
	if err != nil {
		return 0, err
	}
	if len(parsed) == 0 {
		s.logger.WithField("file", filePath).Warn("Holidays file is empty")
		return 0, nil
	}

	byYear := make(map[int][]models.Holiday)
	for _, h := range parsed {
		byYear[h.Jalaali.Year] = append(byYear[h.Jalaali.Year], models.Holiday{
			Date:   h.Date,
			JYear:  h.Jalaali.Year,
			JMonth: h.Jalaali.Month,
			JDay:   h.Jalaali.Day,
			Title:  h.Title,
		})
	}

	var stored int64
	for jy, days := range byYear {
		if err := s.repo.ReplaceYear(jy, days); err != nil {
			return 0, fmt.Errorf("failed to store holidays of %d: %w", jy, err)
		}
		count, err := s.repo.CountYear(jy)
		if err != nil {
			return 0, fmt.Errorf("failed to count holidays of %d: %w", jy, err)
		}
		stored += count

		s.logger.WithFields(logrus.Fields{
			"year":  jy,
			"count": count,
		}).Info("Holidays loaded")
	}

	return int(stored), nil
}

// Add stores a single holiday.
func (s *HolidayService) Add(d jalaali.Date, title string) (*models.Holiday, error) {
	h, err := models.NewHoliday(d, strings.TrimSpace(title))
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.IsHoliday(d)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrHolidayExists, d)
	}

	if err := s.repo.Create(h); err != nil {
		s.logger.WithError(err).Error("Failed to create holiday")
		return nil, err
	}

	s.logger.WithField("date", d.String()).Info("Holiday added")
	return h, nil
}

func (s *HolidayService) ForMonth(jy, jm int) ([]models.Holiday, error) {
	if jm < 1 || jm > 12 {
		return nil, fmt.Errorf("%w: %d", jalaali.ErrInvalidMonth, jm)
	}
	return s.repo.GetByJalaaliMonth(jy, jm)
}

// FormatMonth lists the holidays of a month.
func (s *HolidayService) FormatMonth(jy, jm int) (string, error) {
	days, err := s.ForMonth(jy, jm)
	if err != nil {
		return "", err
	}
	name, err := jalaali.MonthName(jm)
	if err != nil {
		return "", err
	}

	header := fmt.Sprintf("🎉 تعطیلات %s %s", name, jalaali.ToPersianDigits(jy))
	if len(days) == 0 {
		return header + "\n\nتعطیلی ثبت نشده است.", nil
	}

	lines := []string{header, ""}
	for _, h := range days {
		label, err := h.Jalaali().Persian()
		if err != nil {
			return "", err
		}
		if h.Title != "" {
			label += " - " + h.Title
		}
		lines = append(lines, "• "+label)
	}
	return strings.Join(lines, "\n"), nil
}
