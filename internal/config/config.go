package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	DataPath     string

	// Telegram Config (optional for the CLI, required for the bot)
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64

	// Optional integrations
	GeminiAPIKey     string
	ShareTokenSecret string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		return nil, fmt.Errorf("DATABASE_PATH environment variable not set")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = "data"
	}

	allowedIDs, err := parseIDList(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
	}

	var adminID int64
	if adminStr := os.Getenv("ADMIN_TELEGRAM_ID"); adminStr != "" {
		adminID, err = strconv.ParseInt(adminStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	return &Config{
		DatabasePath:           databasePath,
		DataPath:               dataPath,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowedIDs,
		AdminTelegramID:        adminID,
		GeminiAPIKey:           os.Getenv("GEMINI_API_KEY"),
		ShareTokenSecret:       os.Getenv("SHARE_TOKEN_SECRET"),
	}, nil
}

// parseIDList parses a comma-separated list of Telegram user IDs.
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
