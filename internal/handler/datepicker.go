package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jalaali-calendar-bot/internal/service"
	"jalaali-calendar-bot/pkg/jalaali"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const callbackPrefix = "cal"

var ErrInvalidCallback = errors.New("invalid callback data")

type CallbackAction string

const (
	ActionNav   CallbackAction = "nav"
	ActionPick  CallbackAction = "pick"
	ActionToday CallbackAction = "today"
	ActionNoop  CallbackAction = "noop"
)

// Callback is the decoded payload of a date picker button.
type Callback struct {
	Action CallbackAction
	Year   int
	Month  int
	Day    int
}

func (c Callback) Date() jalaali.Date {
	return jalaali.Date{Year: c.Year, Month: c.Month, Day: c.Day}
}

// Data encodes the callback, e.g. "cal:nav:1403:2" or "cal:pick:1403:2:15".
func (c Callback) Data() string {
	switch c.Action {
	case ActionNav:
		return fmt.Sprintf("%s:%s:%d:%d", callbackPrefix, c.Action, c.Year, c.Month)
	case ActionPick:
		return fmt.Sprintf("%s:%s:%d:%d:%d", callbackPrefix, c.Action, c.Year, c.Month, c.Day)
	default:
		return callbackPrefix + ":" + string(c.Action)
	}
}

// ParseCallback decodes and validates button data produced by Callback.Data.
func ParseCallback(data string) (Callback, error) {
	parts := strings.Split(data, ":")
	if len(parts) < 2 || parts[0] != callbackPrefix {
		return Callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}

	cb := Callback{Action: CallbackAction(parts[1])}
	args := parts[2:]

	var want int
	switch cb.Action {
	case ActionNoop, ActionToday:
		want = 0
	case ActionNav:
		want = 2
	case ActionPick:
		want = 3
	default:
		return Callback{}, fmt.Errorf("%w: unknown action %q", ErrInvalidCallback, cb.Action)
	}
	if len(args) != want {
		return Callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
	}

	nums := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return Callback{}, fmt.Errorf("%w: %q", ErrInvalidCallback, data)
		}
		nums[i] = n
	}

	switch cb.Action {
	case ActionNav:
		cb.Year, cb.Month = nums[0], nums[1]
		if err := (jalaali.Date{Year: cb.Year, Month: cb.Month, Day: 1}).Validate(); err != nil {
			return Callback{}, fmt.Errorf("%w: %v", ErrInvalidCallback, err)
		}
	case ActionPick:
		cb.Year, cb.Month, cb.Day = nums[0], nums[1], nums[2]
		if err := cb.Date().Validate(); err != nil {
			return Callback{}, fmt.Errorf("%w: %v", ErrInvalidCallback, err)
		}
	}

	return cb, nil
}

func noopButton(text string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, Callback{Action: ActionNoop}.Data())
}

// dayLabel marks holidays with "*", days with events with "•" and wraps
// today in guillemets.
func dayLabel(view *service.MonthView, day int) string {
	label := jalaali.ToPersianDigits(day)
	if _, ok := view.Holidays[day]; ok {
		label += "*"
	}
	if view.Events[day] > 0 {
		label += "•"
	}
	if view.Today == day {
		label = "«" + label + "»"
	}
	return label
}

// rtl reverses a keyboard row so that Saturday ends up on the right.
func rtl(row []tgbotapi.InlineKeyboardButton) []tgbotapi.InlineKeyboardButton {
	for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
		row[i], row[j] = row[j], row[i]
	}
	return row
}

// DatePickerKeyboard renders view as an inline keyboard: a title row, the
// weekday labels, one row per week and a navigation row. Rows read right to
// left.
func DatePickerKeyboard(view *service.MonthView) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Grid)+3)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(noopButton(view.Title)))

	labels := jalaali.WeekDays()
	header := make([]tgbotapi.InlineKeyboardButton, 0, len(labels))
	for _, l := range labels {
		header = append(header, noopButton(l))
	}
	rows = append(rows, rtl(header))

	for _, week := range view.Grid {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(week))
		for _, day := range week {
			if day == 0 {
				row = append(row, noopButton(" "))
				continue
			}
			data := Callback{Action: ActionPick, Year: view.Year, Month: view.Month, Day: day}.Data()
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(dayLabel(view, day), data))
		}
		rows = append(rows, rtl(row))
	}

	rows = append(rows, navRow(view.Year, view.Month))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// navRow holds next month on the left and previous month on the right.
// Arrows past the supported range become inert.
func navRow(jy, jm int) []tgbotapi.InlineKeyboardButton {
	navButton := func(text string, delta int) tgbotapi.InlineKeyboardButton {
		y, m := jalaali.ShiftMonth(jy, jm, delta)
		if y < jalaali.MinYear || y > jalaali.MaxYear {
			return noopButton(" ")
		}
		return tgbotapi.NewInlineKeyboardButtonData(text, Callback{Action: ActionNav, Year: y, Month: m}.Data())
	}

	return tgbotapi.NewInlineKeyboardRow(
		navButton("«", 1),
		tgbotapi.NewInlineKeyboardButtonData("امروز", Callback{Action: ActionToday}.Data()),
		navButton("»", -1),
	)
}
