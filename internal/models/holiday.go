package models

import (
	"time"

	"jalaali-calendar-bot/pkg/jalaali"
)

// Holiday is an official day off, keyed by its Gregorian date and indexed by
// its Jalaali year and month for month views.
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	JYear     int       `gorm:"not null;index:idx_holiday_jalaali_month" json:"j_year"`
	JMonth    int       `gorm:"not null;index:idx_holiday_jalaali_month;check:j_month >= 1 AND j_month <= 12" json:"j_month"`
	JDay      int       `gorm:"not null" json:"j_day"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// Jalaali returns the holiday's Jalaali date.
func (h *Holiday) Jalaali() jalaali.Date {
	return jalaali.Date{Year: h.JYear, Month: h.JMonth, Day: h.JDay}
}

// NewHoliday builds a holiday for a validated Jalaali date.
func NewHoliday(d jalaali.Date, title string) (*Holiday, error) {
	g, err := d.Time(time.UTC)
	if err != nil {
		return nil, err
	}
	return &Holiday{
		Date:   g,
		JYear:  d.Year,
		JMonth: d.Month,
		JDay:   d.Day,
		Title:  title,
	}, nil
}
