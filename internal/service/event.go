package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/repository"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EventService struct {
	repo   repository.EventRepository
	logger *logrus.Logger
}

func NewEventService(repo repository.EventRepository, logger *logrus.Logger) *EventService {
	return &EventService{repo: repo, logger: logger}
}

// Create stores an event for userID on day d.
func (s *EventService) Create(userID uint, d jalaali.Date, title string) (*models.Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len([]rune(title)) > models.MaxEventTitleLength {
		return nil, fmt.Errorf("%w: at most %d characters", ErrTitleTooLong, models.MaxEventTitleLength)
	}

	g, err := d.Time(time.UTC)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		UserID: userID,
		Date:   g,
		JYear:  d.Year,
		JMonth: d.Month,
		JDay:   d.Day,
		Title:  title,
	}
	if err := s.repo.Create(event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event owned by userID.
func (s *EventService) Delete(userID, eventID uint) error {
	event, err := s.repo.GetByID(eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.UserID != userID {
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"event_id": eventID,
		}).Warn("Attempt to delete someone else's event")
		return ErrForbidden
	}

	if err := s.repo.Delete(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func (s *EventService) Upcoming(userID uint, from time.Time, limit int) ([]*models.Event, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.GetUpcoming(userID, from, limit)
}

// FormatList renders events one per line with their ids.
func (s *EventService) FormatList(events []*models.Event) string {
	if len(events) == 0 {
		return "📭 رویدادی ثبت نشده است."
	}

	lines := []string{"📅 رویدادهای پیش رو:", ""}
	for _, e := range events {
		date, err := e.Jalaali().Persian()
		if err != nil {
			date = e.Jalaali().String()
		}
		lines = append(lines, fmt.Sprintf("#%d  %s - %s", e.ID, date, e.Title))
	}
	return strings.Join(lines, "\n")
}
