package handler

import (
	"errors"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/service"
	"jalaali-calendar-bot/pkg/jalaali"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	calendarHint    = "روزی را انتخاب کنید. * تعطیل، • رویداد"
	eventDatePrompt = "📌 تاریخ رویداد را انتخاب کنید."
)

func (h *Handler) handleToday(chatID int64, user *models.User) {
	report, err := h.calendarService.DayReport(user.ID, h.calendarService.Today())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build day report")
		h.reply(chatID, "❌ خطا در دریافت اطلاعات امروز.")
		return
	}
	h.reply(chatID, report)
}

// handleCalendar shows the current month, or yyyy/mm when given.
func (h *Handler) handleCalendar(chatID int64, user *models.User, args string) {
	jy, jm, ok := h.monthArg(chatID, args)
	if !ok {
		return
	}
	h.sendCalendar(chatID, user, jy, jm, calendarHint)
}

func (h *Handler) handleConvert(chatID int64, args string) {
	if args == "" {
		h.reply(chatID, "❌ فرمت: /convert 1403/01/01 یا /convert 2024-03-20")
		return
	}

	result, err := h.calendarService.Convert(args)
	if err != nil {
		h.reply(chatID, dateErrorText(err))
		return
	}
	h.reply(chatID, "🔄 "+result)
}

func (h *Handler) sendCalendar(chatID int64, user *models.User, jy, jm int, text string) {
	view, err := h.calendarService.MonthView(user.ID, jy, jm)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build month view")
		h.reply(chatID, dateErrorText(err))
		return
	}

	msg := tgbotapi.NewMessage(chatID, "📆 "+view.Title+"\n"+text)
	msg.ReplyMarkup = DatePickerKeyboard(view)
	h.send(msg)
}

// editCalendar redraws an existing picker message for another month.
func (h *Handler) editCalendar(message *tgbotapi.Message, user *models.User, jy, jm int) {
	view, err := h.calendarService.MonthView(user.ID, jy, jm)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build month view")
		return
	}

	text := calendarHint
	if state, ok := h.getState(message.Chat.ID); ok && state.step == stepPickEventDate {
		text = eventDatePrompt
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(
		message.Chat.ID,
		message.MessageID,
		"📆 "+view.Title+"\n"+text,
		DatePickerKeyboard(view),
	)
	h.send(edit)
}

// pickDate either continues /addevent or shows the report of the day.
func (h *Handler) pickDate(chatID int64, user *models.User, d jalaali.Date) {
	if state, ok := h.getState(chatID); ok && state.step == stepPickEventDate {
		h.setState(chatID, chatState{step: stepEventTitle, date: d})
		persian, _ := d.Persian()
		h.reply(chatID, "✏️ عنوان رویداد "+persian+" را بفرستید. برای لغو /cancel را بزنید.")
		return
	}

	report, err := h.calendarService.DayReport(user.ID, d)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build day report")
		h.reply(chatID, dateErrorText(err))
		return
	}
	h.reply(chatID, report)
}

// monthArg parses an optional yyyy/mm argument, defaulting to the current
// month. It replies with an error and returns false on bad input.
func (h *Handler) monthArg(chatID int64, args string) (int, int, bool) {
	if args == "" {
		today := h.calendarService.Today()
		return today.Year, today.Month, true
	}

	jy, jm, err := jalaali.ParseYearMonth(args)
	if err != nil {
		h.reply(chatID, dateErrorText(err))
		return 0, 0, false
	}
	return jy, jm, true
}

func dateErrorText(err error) string {
	switch {
	case errors.Is(err, jalaali.ErrInvalidMonth):
		return "❌ ماه باید بین ۱ تا ۱۲ باشد."
	case errors.Is(err, jalaali.ErrInvalidDateRange):
		return "❌ تاریخ خارج از بازه‌ی پشتیبانی‌شده است."
	case errors.Is(err, jalaali.ErrInvalidDate):
		return "❌ تاریخ نامعتبر است. نمونه: 1403/01/15"
	case errors.Is(err, service.ErrEmptyTitle):
		return "❌ عنوان نباید خالی باشد."
	case errors.Is(err, service.ErrTitleTooLong):
		return "❌ عنوان بیش از حد طولانی است."
	default:
		return "❌ خطای داخلی. لطفاً بعداً تلاش کنید."
	}
}
