package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/service"
	"jalaali-calendar-bot/pkg/jalaali"

	"github.com/sirupsen/logrus"
)

func (h *Handler) handleHolidays(chatID int64, args string) {
	jy, jm, ok := h.monthArg(chatID, args)
	if !ok {
		return
	}

	text, err := h.holidayService.FormatMonth(jy, jm)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list holidays")
		h.reply(chatID, dateErrorText(err))
		return
	}
	h.reply(chatID, text)
}

// handleAddHoliday: /addholiday yyyy/mm/dd title
func (h *Handler) handleAddHoliday(user *models.User, args string) {
	if !h.requireAdmin(user) {
		return
	}

	dateArg, title, _ := strings.Cut(args, " ")
	if dateArg == "" {
		h.reply(user.ChatID, "❌ فرمت: /addholiday 1403/01/01 نوروز")
		return
	}
	d, err := jalaali.ParseDate(dateArg)
	if err != nil {
		h.reply(user.ChatID, dateErrorText(err))
		return
	}

	if _, err := h.holidayService.Add(d, title); err != nil {
		if errors.Is(err, service.ErrHolidayExists) {
			h.reply(user.ChatID, "⚠️ این روز قبلاً تعطیل ثبت شده است.")
			return
		}
		h.logger.WithError(err).Error("Failed to add holiday")
		h.reply(user.ChatID, "❌ خطا در ثبت تعطیلی.")
		return
	}

	persian, _ := d.Persian()
	h.reply(user.ChatID, "✅ تعطیلی "+persian+" ثبت شد.")
}

// handleLoadHolidays reloads HOLIDAYS_FILE. Other paths are refused so chat
// input never selects a file on the server.
func (h *Handler) handleLoadHolidays(user *models.User, args string) {
	if !h.requireAdmin(user) {
		return
	}

	path := h.config.HolidaysFile
	if args != "" && args != path {
		h.logger.WithFields(logrus.Fields{
			"admin": user.ChatID,
			"path":  args,
		}).Warn("Refused holiday file outside configuration")
		h.reply(user.ChatID, "❌ فقط فایل تعطیلات تنظیم‌شده قابل بارگذاری است. فرمت: /loadholidays")
		return
	}
	if path == "" {
		h.reply(user.ChatID, "❌ فایل تعطیلات تنظیم نشده است (HOLIDAYS_FILE).")
		return
	}

	count, err := h.holidayService.LoadFromFile(path)
	if err != nil {
		h.logger.WithError(err).WithField("path", path).Error("Failed to load holidays")
		h.reply(user.ChatID, "❌ خطا در بارگذاری فایل تعطیلات.")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"admin": user.ChatID,
		"path":  path,
		"count": count,
	}).Info("Holidays reloaded")
	h.reply(user.ChatID, fmt.Sprintf("✅ %s روز تعطیل بارگذاری شد.", jalaali.ToPersianDigits(count)))
}

func (h *Handler) handleSetRole(user *models.User, args string, role models.Role) {
	if !h.requireAdmin(user) {
		return
	}

	target, err := strconv.ParseInt(jalaali.NormalizeDigits(args), 10, 64)
	if err != nil {
		h.reply(user.ChatID, "❌ فرمت: /promote <chat_id> یا /demote <chat_id>")
		return
	}
	if target == user.ChatID && role != models.RoleAdmin {
		h.reply(user.ChatID, "❌ نمی‌توانید دسترسی خودتان را حذف کنید.")
		return
	}

	if err := h.userService.SetRole(user.ChatID, target, role); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.reply(user.ChatID, "❌ کاربر پیدا نشد. کاربر باید ابتدا /start را بزند.")
			return
		}
		h.logger.WithError(err).Error("Failed to update role")
		h.reply(user.ChatID, "❌ خطا در تغییر نقش.")
		return
	}

	if role == models.RoleAdmin {
		h.reply(user.ChatID, fmt.Sprintf("✅ کاربر %d مدیر شد.", target))
		h.reply(target, "👑 شما به عنوان مدیر تعیین شدید. /help")
		return
	}
	h.reply(user.ChatID, fmt.Sprintf("✅ دسترسی مدیر از کاربر %d گرفته شد.", target))
}

func (h *Handler) handleStats(user *models.User) {
	if !h.requireAdmin(user) {
		return
	}

	text, err := h.userService.FormatStats()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get stats")
		h.reply(user.ChatID, "❌ خطا در دریافت آمار.")
		return
	}
	h.reply(user.ChatID, text)
}
