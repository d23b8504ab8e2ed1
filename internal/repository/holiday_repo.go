package repository

import (
	"errors"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(day *models.Holiday) error
	ReplaceYear(jy int, days []models.Holiday) error
	GetByDate(d jalaali.Date) (*models.Holiday, error)
	GetByJalaaliMonth(jy, jm int) ([]models.Holiday, error)
	IsHoliday(d jalaali.Date) (bool, error)
	CountYear(jy int) (int64, error)
}

type GormHolidayRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormHolidayRepository(db *gorm.DB, logger *logrus.Logger) (*GormHolidayRepository, error) {
	if err := db.AutoMigrate(&models.Holiday{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate holidays table")
		return nil, err
	}

	logger.Debug("Holiday repository initialized")

	return &GormHolidayRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormHolidayRepository) Create(day *models.Holiday) error {
	if err := r.db.Create(day).Error; err != nil {
		r.logger.WithError(err).WithField("date", day.Jalaali().String()).Error("Failed to create holiday")
		return err
	}
	return nil
}

// ReplaceYear drops every holiday of year jy and stores days instead, in one
// transaction.
func (r *GormHolidayRepository) ReplaceYear(jy int, days []models.Holiday) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("j_year = ?", jy).Delete(&models.Holiday{}).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		return tx.Create(&days).Error
	})
	if err != nil {
		r.logger.WithError(err).WithField("year", jy).Error("Failed to replace holidays")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"year":  jy,
		"count": len(days),
	}).Debug("Holidays replaced")
	return nil
}

// GetByDate returns nil, nil when d is not a holiday.
func (r *GormHolidayRepository) GetByDate(d jalaali.Date) (*models.Holiday, error) {
	var day models.Holiday
	err := r.db.Where("j_year = ? AND j_month = ? AND j_day = ?", d.Year, d.Month, d.Day).First(&day).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.logger.WithError(err).WithField("date", d.String()).Error("Failed to get holiday")
		return nil, err
	}
	return &day, nil
}

func (r *GormHolidayRepository) GetByJalaaliMonth(jy, jm int) ([]models.Holiday, error) {
	var days []models.Holiday
	err := r.db.Where("j_year = ? AND j_month = ?", jy, jm).Order("j_day").Find(&days).Error
	return days, err
}

func (r *GormHolidayRepository) IsHoliday(d jalaali.Date) (bool, error) {
	var count int64
	err := r.db.Model(&models.Holiday{}).
		Where("j_year = ? AND j_month = ? AND j_day = ?", d.Year, d.Month, d.Day).
		Count(&count).Error
	return count > 0, err
}

func (r *GormHolidayRepository) CountYear(jy int) (int64, error) {
	var count int64
	err := r.db.Model(&models.Holiday{}).Where("j_year = ?", jy).Count(&count).Error
	return count, err
}
