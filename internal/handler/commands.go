package handler

import (
	"strings"

	"jalaali-calendar-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message, user *models.User) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.handleStart(chatID, user)
	case "help":
		h.handleHelp(chatID, user)
	case "today":
		h.handleToday(chatID, user)
	case "calendar":
		h.handleCalendar(chatID, user, args)
	case "convert":
		h.handleConvert(chatID, args)
	case "holidays":
		h.handleHolidays(chatID, args)
	case "addevent":
		h.handleAddEvent(chatID, user, args)
	case "myevents":
		h.handleMyEvents(chatID, user)
	case "delevent":
		h.handleDeleteEvent(chatID, user, args)
	case "cancel":
		h.handleCancel(chatID)

	// Admin commands
	case "addholiday":
		h.handleAddHoliday(user, args)
	case "loadholidays":
		h.handleLoadHolidays(user, args)
	case "promote":
		h.handleSetRole(user, args, models.RoleAdmin)
	case "demote":
		h.handleSetRole(user, args, models.RoleClient)
	case "stats":
		h.handleStats(user)

	default:
		h.reply(chatID, "❓ دستور ناشناخته است. برای راهنما /help را بزنید.")
	}
}

func (h *Handler) handleStart(chatID int64, user *models.User) {
	text := "👋 سلام " + user.DisplayName() + "!\n\n" +
		"من تقویم هجری شمسی شما هستم. تاریخ امروز، تعطیلات و رویدادهای شخصی‌تان را اینجا ببینید.\n\n" +
		helpText(user.IsAdmin())
	h.reply(chatID, text)
}

func (h *Handler) handleHelp(chatID int64, user *models.User) {
	h.reply(chatID, helpText(user.IsAdmin()))
}

func (h *Handler) handleCancel(chatID int64) {
	if _, ok := h.getState(chatID); !ok {
		h.reply(chatID, "کاری برای لغو وجود ندارد.")
		return
	}
	h.clearState(chatID)
	h.reply(chatID, "✅ لغو شد.")
}

func helpText(isAdmin bool) string {
	lines := []string{
		"📖 دستورها:",
		"/today - تاریخ امروز",
		"/calendar [yyyy/mm] - تقویم ماه",
		"/convert <تاریخ> - تبدیل شمسی و میلادی (1403/01/01 یا 2024-03-20)",
		"/holidays [yyyy/mm] - تعطیلات ماه",
		"/addevent [yyyy/mm/dd عنوان] - افزودن رویداد",
		"/myevents - رویدادهای پیش رو",
		"/delevent <شناسه> - حذف رویداد",
		"/cancel - لغو عملیات جاری",
	}
	if isAdmin {
		lines = append(lines,
			"",
			"👑 دستورهای مدیر:",
			"/addholiday yyyy/mm/dd عنوان - ثبت تعطیلی",
			"/loadholidays - بارگذاری دوباره فایل تعطیلات",
			"/promote <chat_id> - ارتقا به مدیر",
			"/demote <chat_id> - حذف دسترسی مدیر",
			"/stats - آمار ربات",
		)
	}
	return strings.Join(lines, "\n")
}
