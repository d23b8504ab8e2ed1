package handler

import (
	"context"
	"sync"

	"jalaali-calendar-bot/internal/config"
	"jalaali-calendar-bot/internal/models"
	"jalaali-calendar-bot/internal/service"
	"jalaali-calendar-bot/pkg/jalaali"
	"jalaali-calendar-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	stepPickEventDate = "pick_event_date"
	stepEventTitle    = "event_title"
)

const (
	defaultUpdateWorkers = 8
	workerQueueSize      = 64
)

// chatState tracks a multi-step conversation, e.g. /addevent.
type chatState struct {
	step string
	date jalaali.Date
}

type Handler struct {
	bot             telegram.Sender
	userService     *service.UserService
	holidayService  *service.HolidayService
	eventService    *service.EventService
	calendarService *service.CalendarService
	config          *config.BotConfig
	logger          *logrus.Logger

	workers int
	mu      sync.Mutex
	states  map[int64]chatState
	wg      sync.WaitGroup
}

func NewHandler(
	bot telegram.Sender,
	userService *service.UserService,
	holidayService *service.HolidayService,
	eventService *service.EventService,
	calendarService *service.CalendarService,
	cfg *config.BotConfig,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		bot:             bot,
		userService:     userService,
		holidayService:  holidayService,
		eventService:    eventService,
		calendarService: calendarService,
		config:          cfg,
		logger:          logger,
		workers:         defaultUpdateWorkers,
		states:          make(map[int64]chatState),
	}
}

// HandleUpdates serves updates until the channel is closed or ctx is done,
// then waits for queued updates to finish. Updates of one chat are handled
// in arrival order by the same worker; different chats run in parallel.
func (h *Handler) HandleUpdates(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	queues := make([]chan tgbotapi.Update, h.workers)
	for i := range queues {
		queues[i] = make(chan tgbotapi.Update, workerQueueSize)
		h.wg.Add(1)
		go func(queue <-chan tgbotapi.Update) {
			defer h.wg.Done()
			for update := range queue {
				h.handleUpdate(update)
			}
		}(queues[i])
	}
	defer func() {
		for _, queue := range queues {
			close(queue)
		}
		h.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			select {
			case queues[shard(updateChatID(update), len(queues))] <- update:
			case <-ctx.Done():
				return
			}
		}
	}
}

// updateChatID returns the chat an update belongs to, or 0 when it has none.
func updateChatID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil && update.Message.Chat != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil:
		return update.CallbackQuery.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		return update.CallbackQuery.From.ID
	}
	return 0
}

func shard(chatID int64, n int) int {
	return int(uint64(chatID) % uint64(n))
}

func (h *Handler) handleUpdate(update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.WithField("panic", r).WithField("update_id", update.UpdateID).Error("Update handler panicked")
		}
	}()

	if update.CallbackQuery != nil {
		h.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	h.handleMessage(update.Message)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	h.logger.WithFields(logrus.Fields{
		"chat_id":  chatID,
		"username": message.From.UserName,
	}).Debug(message.Text)

	user, err := h.ensureUser(message.From)
	if err != nil {
		h.logger.WithError(err).Error("Failed to register user")
		h.reply(chatID, "❌ خطا در ثبت کاربر. لطفاً دوباره تلاش کنید.")
		return
	}

	if message.IsCommand() {
		h.handleCommand(message, user)
		return
	}

	if state, ok := h.getState(chatID); ok && state.step == stepEventTitle {
		h.saveEventTitle(message, user, state)
		return
	}

	h.reply(chatID, "برای دیدن فهرست دستورها /help را بزنید.")
}

// handleCallbackQuery serves the date picker buttons.
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	defer h.answerCallback(callback.ID, "")

	if callback.Message == nil || callback.From == nil {
		return
	}

	cb, err := ParseCallback(callback.Data)
	if err != nil {
		h.logger.WithError(err).WithField("data", callback.Data).Warn("Malformed callback data")
		return
	}

	user, err := h.ensureUser(callback.From)
	if err != nil {
		h.logger.WithError(err).Error("Failed to register user")
		return
	}

	switch cb.Action {
	case ActionNoop:
	case ActionNav:
		h.editCalendar(callback.Message, user, cb.Year, cb.Month)
	case ActionToday:
		today := h.calendarService.Today()
		h.editCalendar(callback.Message, user, today.Year, today.Month)
	case ActionPick:
		h.pickDate(callback.Message.Chat.ID, user, cb.Date())
	}
}

func (h *Handler) ensureUser(from *tgbotapi.User) (*models.User, error) {
	return h.userService.EnsureUser(from.ID, from.UserName, from.FirstName, from.LastName)
}

func (h *Handler) getState(chatID int64) (chatState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	state, ok := h.states[chatID]
	return state, ok
}

func (h *Handler) setState(chatID int64, state chatState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.states[chatID] = state
}

func (h *Handler) clearState(chatID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.states, chatID)
}

func (h *Handler) reply(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.WithError(err).Error("Failed to send message")
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.WithError(err).Warn("Failed to answer callback")
	}
}

// requireAdmin replies with an error and returns false for non-admin chats.
func (h *Handler) requireAdmin(user *models.User) bool {
	if user.IsAdmin() {
		return true
	}
	h.logger.WithField("chat_id", user.ChatID).Warn("Unauthorized access to admin command")
	h.reply(user.ChatID, "❌ دسترسی ندارید. این دستور فقط برای مدیران است.")
	return false
}
