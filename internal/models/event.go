package models

import (
	"strings"
	"time"

	"jalaali-calendar-bot/pkg/jalaali"
)

const MaxEventTitleLength = 200

// Event is a date a user picked in the calendar together with a note.
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	JYear     int       `gorm:"not null;index:idx_event_jalaali_month" json:"j_year"`
	JMonth    int       `gorm:"not null;index:idx_event_jalaali_month;check:j_month >= 1 AND j_month <= 12" json:"j_month"`
	JDay      int       `gorm:"not null" json:"j_day"`
	Title     string    `gorm:"type:varchar(200);not null" json:"title"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// Jalaali returns the event's Jalaali date.
func (e *Event) Jalaali() jalaali.Date {
	return jalaali.Date{Year: e.JYear, Month: e.JMonth, Day: e.JDay}
}

// IsValid checks that the stored Jalaali and Gregorian dates agree and the
// title is usable.
func (e *Event) IsValid() bool {
	if e.UserID == 0 {
		return false
	}
	title := strings.TrimSpace(e.Title)
	if title == "" || len([]rune(title)) > MaxEventTitleLength {
		return false
	}
	g, err := e.Jalaali().Time(time.UTC)
	if err != nil {
		return false
	}
	return g.Equal(time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC))
}
