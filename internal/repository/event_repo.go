package repository

import (
	"errors"
	"time"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidEvent = errors.New("invalid event data")

type EventRepository interface {
	Create(event *models.Event) error
	GetByID(id uint) (*models.Event, error)
	Delete(id uint) error
	GetByUserDate(userID uint, d jalaali.Date) ([]*models.Event, error)
	GetByUserMonth(userID uint, jy, jm int) ([]*models.Event, error)
	GetUpcoming(userID uint, from time.Time, limit int) ([]*models.Event, error)
}

type GormEventRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEventRepository(db *gorm.DB, logger *logrus.Logger) (*GormEventRepository, error) {
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate events table")
		return nil, err
	}

	logger.Debug("Event repository initialized")

	return &GormEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormEventRepository) Create(event *models.Event) error {
	if !event.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"user_id": event.UserID,
			"date":    event.Jalaali().String(),
		}).Warn("Invalid event data")
		return ErrInvalidEvent
	}

	if err := r.db.Create(event).Error; err != nil {
		r.logger.WithError(err).Error("Failed to create event")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"id":      event.ID,
		"user_id": event.UserID,
		"date":    event.Jalaali().String(),
	}).Info("Event created")

	return nil
}

// GetByID returns nil, nil when there is no such event.
func (r *GormEventRepository) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.logger.WithError(err).WithField("id", id).Error("Failed to get event")
		return nil, err
	}
	return &event, nil
}

func (r *GormEventRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Event{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to delete event")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.logger.WithField("id", id).Info("Event deleted")
	return nil
}

func (r *GormEventRepository) GetByUserDate(userID uint, d jalaali.Date) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.
		Where("user_id = ? AND j_year = ? AND j_month = ? AND j_day = ?", userID, d.Year, d.Month, d.Day).
		Order("id").
		Find(&events).Error
	return events, err
}

func (r *GormEventRepository) GetByUserMonth(userID uint, jy, jm int) ([]*models.Event, error) {
	var events []*models.Event
	err := r.db.
		Where("user_id = ? AND j_year = ? AND j_month = ?", userID, jy, jm).
		Order("j_day, id").
		Find(&events).Error
	return events, err
}

// GetUpcoming returns the user's events on or after the day of from, oldest
// first.
func (r *GormEventRepository) GetUpcoming(userID uint, from time.Time, limit int) ([]*models.Event, error) {
	start, err := jalaali.ToJalaali(from)
	if err != nil {
		return nil, err
	}

	var events []*models.Event
	err = r.db.
		Where("user_id = ?", userID).
		Where("(j_year > ?) OR (j_year = ? AND j_month > ?) OR (j_year = ? AND j_month = ? AND j_day >= ?)",
			start.Year, start.Year, start.Month, start.Year, start.Month, start.Day).
		Order("j_year, j_month, j_day, id").
		Limit(limit).
		Find(&events).Error
	return events, err
}
