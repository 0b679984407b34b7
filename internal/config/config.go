package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"

	ShareTargetHTTP     = "http"
	ShareTargetTelegram = "telegram"

	DefaultShareURL = "https://api.twitter.com/1.1/statuses/update.json"
)

type Config struct {
	Storage  StorageConfig
	Share    ShareConfig
	Telegram TelegramConfig
	Schedule ScheduleConfig
	// DefaultGoals are seeded on startup when missing, e.g. "steps=10000,sleep=8".
	DefaultGoals map[string]float64
}

type StorageConfig struct {
	Backend     string
	FilePath    string
	SQLitePath  string
	PostgresURL string
	TrackerID   string
	Redis       struct {
		Addr     string
		Password string
		DB       int
		Key      string
	}
}

type ShareConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
	Target  string
}

type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Enabled reports whether the bot front-end should run.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

type ScheduleConfig struct {
	SummaryCron string
	WeeklyCron  string
	Location    *time.Location
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Storage.Backend = strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile))
	cfg.Storage.FilePath = getEnv("TRACKER_FILE", "fitness_data.json")
	cfg.Storage.SQLitePath = getEnv("DB_PATH", "fitness.db")
	cfg.Storage.PostgresURL = getEnv("DATABASE_URL", "")
	cfg.Storage.TrackerID = getEnv("TRACKER_ID", "default")
	cfg.Storage.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Storage.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Storage.Redis.Key = getEnv("REDIS_KEY", "fitness:state")

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.Storage.Redis.DB = redisDB

	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	case BackendPostgres:
		if cfg.Storage.PostgresURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	cfg.Share.URL = getEnv("SHARE_URL", DefaultShareURL)
	cfg.Share.Token = getEnv("SHARE_TOKEN", "")
	cfg.Share.Target = strings.ToLower(getEnv("SHARE_TARGET", ShareTargetHTTP))
	timeout, err := time.ParseDuration(getEnv("SHARE_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHARE_TIMEOUT: %w", err)
	}
	cfg.Share.Timeout = timeout

	cfg.Telegram.Token = getEnv("TG_TOKEN", "")
	if chatIDStr := getEnv("TG_CHAT_ID", ""); chatIDStr != "" {
		chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TG_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = chatID
	}
	if cfg.Telegram.Enabled() && cfg.Telegram.ChatID == 0 {
		return nil, fmt.Errorf("TG_CHAT_ID is required when TG_TOKEN is set")
	}
	switch cfg.Share.Target {
	case ShareTargetHTTP:
	case ShareTargetTelegram:
		if !cfg.Telegram.Enabled() {
			return nil, fmt.Errorf("SHARE_TARGET=telegram requires TG_TOKEN")
		}
	default:
		return nil, fmt.Errorf("unknown SHARE_TARGET %q", cfg.Share.Target)
	}

	cfg.Schedule.SummaryCron = getEnv("SUMMARY_CRON", "0 21 * * *")
	cfg.Schedule.WeeklyCron = getEnv("WEEKLY_CRON", "0 20 * * 0")

	tzName := getEnv("TZ_NAME", "UTC")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Printf("⚠️ Unknown TZ_NAME %q, falling back to UTC", tzName)
		loc = time.UTC
	}
	cfg.Schedule.Location = loc

	goals, err := ParseGoals(getEnv("DEFAULT_GOALS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_GOALS: %w", err)
	}
	cfg.DefaultGoals = goals

	log.Printf("✅ Configuration loaded: backend=%s, bot=%t, share=%s", cfg.Storage.Backend, cfg.Telegram.Enabled(), cfg.Share.Target)

	return cfg, nil
}

// ParseGoals parses "name=target" pairs separated by commas.
func ParseGoals(s string) (map[string]float64, error) {
	goals := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=target, got %q", pair)
		}
		target, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("goal %q: %w", name, err)
		}
		goals[name] = target
	}
	return goals, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
