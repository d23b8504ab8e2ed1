package main

import (
	"context"
	"os/signal"
	"syscall"

	"jalaali-calendar-bot/internal/config"
	"jalaali-calendar-bot/internal/handler"
	"jalaali-calendar-bot/internal/logger"
	"jalaali-calendar-bot/internal/repository"
	"jalaali-calendar-bot/internal/service"
	"jalaali-calendar-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.WithFields(logrus.Fields{
		"database": cfg.DatabaseURL,
		"timezone": cfg.Location.String(),
	}).Info("Config initialized")

	db, err := repository.OpenSQLite(cfg.DatabaseURL, nil, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("Failed to get database instance")
	}

	userRepo, err := repository.NewGormUserRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create user repository")
	}

	holidayRepo, err := repository.NewGormHolidayRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create holiday repository")
	}

	eventRepo, err := repository.NewGormEventRepository(db, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create event repository")
	}

	userService := service.NewUserService(userRepo, log)
	holidayService := service.NewHolidayService(holidayRepo, log)
	eventService := service.NewEventService(eventRepo, log)
	calendarService := service.NewCalendarService(holidayRepo, eventRepo, cfg.Location, log)

	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		log.WithError(err).Warn("Failed to initialize admin")
	} else if cfg.BaseAdminChatID != 0 {
		log.WithField("chat_id", cfg.BaseAdminChatID).Info("Admin initialized")
	}

	if cfg.HolidaysFile != "" {
		count, err := holidayService.LoadFromFile(cfg.HolidaysFile)
		if err != nil {
			log.WithError(err).WithField("file", cfg.HolidaysFile).Warn("Failed to load holidays")
		} else {
			log.WithField("count", count).Info("Holidays loaded")
		}
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.Debug)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Telegram client")
	}

	botHandler := handler.NewHandler(
		client.Bot,
		userService,
		holidayService,
		eventService,
		calendarService,
		cfg,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(ctx, client.Updates())
		close(done)
	}()

	log.Info("Bot started. Press Ctrl+C to stop.")
	<-ctx.Done()

	client.Stop()
	<-done

	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Error("Error closing database")
	}

	log.Info("Bot stopped gracefully")
}
