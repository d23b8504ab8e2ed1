package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type BotConfig struct {
	TelegramToken   string
	BaseAdminChatID int64
	DatabaseURL     string
	HolidaysFile    string
	Location        *time.Location
	Debug           bool
	LogLevel        string
	LogFormat       string
}

var instance *BotConfig
var once sync.Once

// GetBotConfig loads the configuration once and exits on error.
func GetBotConfig() *BotConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Warnf("no .env file loaded: %s", err.Error())
		}

		cfg, err := Load()
		if err != nil {
			logrus.Fatalf("error loading config: %s", err.Error())
		}
		instance = cfg
	})

	return instance
}

// Load reads the configuration from the environment.
func Load() (*BotConfig, error) {
	cfg := &BotConfig{}

	cfg.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
	if cfg.TelegramToken == "" {
		return nil, errors.New("could not get bot token")
	}

	var err error
	cfg.BaseAdminChatID, err = getEnvAsInt("BASE_ADMIN_CHAT_ID", 0)
	if err != nil {
		return nil, fmt.Errorf("could not get admin chat id: %w", err)
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "calendar.db")
	cfg.HolidaysFile = getEnv("HOLIDAYS_FILE", "")

	tz := getEnv("TIMEZONE", "Asia/Tehran")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("could not load timezone %q: %w", tz, err)
	}

	cfg.Debug = getEnvAsBool("BOT_DEBUG", false)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt(name string, defaultVal int64) (int64, error) {
	valStr := getEnv(name, "")
	if valStr == "" {
		return defaultVal, nil
	}
	return strconv.ParseInt(valStr, 10, 64)
}
