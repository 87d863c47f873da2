package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultMaxResidents = 5

type Config struct {
	BotToken     string
	DatabaseURL  string
	AdminID      int64
	MaxResidents int
	Location     *time.Location
	HTTPAddr     string
	LogLevel     string
	Env          string // dev|prod
	SentryDSN    string
}

// Load читает конфигурацию из окружения. Отсутствие BOT_TOKEN, ADMIN_ID
// или DATABASE_URL — фатально для старта.
func Load() (*Config, error) {
	tz := getenv("TZ", "Europe/Moscow")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	botToken, err := mustEnv("BOT_TOKEN")
	if err != nil {
		return nil, err
	}
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return nil, err
	}
	adminRaw, err := mustEnv("ADMIN_ID")
	if err != nil {
		return nil, err
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID: %w", err)
	}

	maxResidents := defaultMaxResidents
	if v := os.Getenv("MAX_USERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("MAX_USERS: некорректное значение %q", v)
		}
		maxResidents = n
	}

	cfg := &Config{
		BotToken:     botToken,
		DatabaseURL:  databaseURL,
		AdminID:      adminID,
		MaxResidents: maxResidents,
		Location:     loc,
		HTTPAddr:     getenv("HTTP_ADDR", ":8080"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		Env:          getenv("ENV", "dev"),
		SentryDSN:    os.Getenv("SENTRY_DSN"),
	}
	return cfg, nil
}

func mustEnv(k string) (string, error) {
	v := os.Getenv(k)
	if v == "" {
		return "", fmt.Errorf("required env %s is empty", k)
	}
	return v, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
