package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/service"
	"jalaali-calendar-bot/pkg/jalaali"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const upcomingEventsLimit = 10

// handleAddEvent accepts "/addevent yyyy/mm/dd title", "/addevent yyyy/mm/dd"
// (asks for the title) or a bare "/addevent" (opens the date picker).
func (h *Handler) handleAddEvent(chatID int64, user *models.User, args string) {
	if args == "" {
		h.setState(chatID, chatState{step: stepPickEventDate})
		today := h.calendarService.Today()
		h.sendCalendar(chatID, user, today.Year, today.Month, eventDatePrompt)
		return
	}

	dateArg, title, _ := strings.Cut(args, " ")
	d, err := jalaali.ParseDate(dateArg)
	if err != nil {
		h.reply(chatID, dateErrorText(err))
		return
	}

	if strings.TrimSpace(title) == "" {
		h.setState(chatID, chatState{step: stepEventTitle, date: d})
		persian, _ := d.Persian()
		h.reply(chatID, "✏️ عنوان رویداد "+persian+" را بفرستید. برای لغو /cancel را بزنید.")
		return
	}

	h.createEvent(chatID, user, d, title)
}

func (h *Handler) saveEventTitle(message *tgbotapi.Message, user *models.User, state chatState) {
	h.createEvent(message.Chat.ID, user, state.date, message.Text)
}

func (h *Handler) createEvent(chatID int64, user *models.User, d jalaali.Date, title string) {
	event, err := h.eventService.Create(user.ID, d, title)
	if err != nil {
		if !errors.Is(err, service.ErrEmptyTitle) && !errors.Is(err, service.ErrTitleTooLong) {
			h.logger.WithError(err).Error("Failed to create event")
		}
		h.reply(chatID, dateErrorText(err))
		return
	}
	h.clearState(chatID)

	persian, _ := d.Persian()
	h.reply(chatID, fmt.Sprintf("✅ رویداد #%d برای %s ثبت شد:\n%s", event.ID, persian, event.Title))
}

func (h *Handler) handleMyEvents(chatID int64, user *models.User) {
	today := h.calendarService.Today()
	from, err := today.Time(h.config.Location)
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve today")
		h.reply(chatID, dateErrorText(err))
		return
	}

	events, err := h.eventService.Upcoming(user.ID, from, upcomingEventsLimit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get upcoming events")
		h.reply(chatID, "❌ خطا در دریافت رویدادها.")
		return
	}
	h.reply(chatID, h.eventService.FormatList(events))
}

func (h *Handler) handleDeleteEvent(chatID int64, user *models.User, args string) {
	id, err := strconv.ParseUint(jalaali.NormalizeDigits(strings.TrimPrefix(args, "#")), 10, 64)
	if err != nil || id == 0 {
		h.reply(chatID, "❌ فرمت: /delevent <شناسه>")
		return
	}

	err = h.eventService.Delete(user.ID, uint(id))
	switch {
	case err == nil:
		h.reply(chatID, fmt.Sprintf("🗑 رویداد #%d حذف شد.", id))
	case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrForbidden):
		h.reply(chatID, "❌ رویدادی با این شناسه پیدا نشد.")
	default:
		h.logger.WithError(err).Error("Failed to delete event")
		h.reply(chatID, "❌ خطا در حذف رویداد.")
	}
}
