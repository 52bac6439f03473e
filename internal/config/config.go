package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendDisk       = "disk"
	BackendClickHouse = "clickhouse"
	BackendMock       = "mock"
)

// Config holds the application configuration
type Config struct {
	TelegramToken string
	AdminUserIDs  []int64

	// Force-subscription configuration. The gate is disabled when
	// RequiredChannelID is empty; the join button is omitted when
	// ChannelInviteLink is empty.
	RequiredChannelID string
	ChannelInviteLink string

	// Bot mode configuration
	WebhookMode bool   // If true, use webhook mode; if false, use polling mode
	WebhookURL  string // URL for webhook (required if WebhookMode is true)

	// Storage backend selection
	StorageBackend string
	DataDir        string // disk backend root

	// ClickHouse configuration
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseUseTLS   bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	config := &Config{}

	// Telegram Bot Token (required)
	config.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if config.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	// Admin User IDs (required)
	adminIDsStr := os.Getenv("ADMIN_USER_ID")
	if adminIDsStr == "" {
		return nil, fmt.Errorf("ADMIN_USER_ID is required (comma-separated list of Telegram user IDs)")
	}

	idStrs := strings.Split(adminIDsStr, ",")
	for _, idStr := range idStrs {
		id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID in ADMIN_USER_ID: %s", idStr)
		}
		config.AdminUserIDs = append(config.AdminUserIDs, id)
	}

	// Force-subscription (both optional)
	config.RequiredChannelID = os.Getenv("REQUIRED_CHANNEL_ID")
	config.ChannelInviteLink = os.Getenv("CHANNEL_INVITE_LINK")

	// Bot mode configuration
	config.WebhookMode = os.Getenv("WEBHOOK_MODE") == "true"
	if config.WebhookMode {
		config.WebhookURL = os.Getenv("WEBHOOK_URL")
		if config.WebhookURL == "" {
			return nil, fmt.Errorf("WEBHOOK_URL is required when WEBHOOK_MODE is true")
		}
	}

	// Storage backend (default: disk, the local JSON store)
	config.StorageBackend = os.Getenv("STORAGE_BACKEND")
	if config.StorageBackend == "" {
		config.StorageBackend = BackendDisk
	}

	switch config.StorageBackend {
	case BackendMock:
		// Nothing further to configure.
	case BackendDisk:
		config.DataDir = os.Getenv("DATA_DIR")
		if config.DataDir == "" {
			config.DataDir = "./data"
		}
	case BackendClickHouse:
		config.ClickHouseHost = os.Getenv("CLICKHOUSE_HOST")
		if config.ClickHouseHost == "" {
			return nil, fmt.Errorf("CLICKHOUSE_HOST is required when STORAGE_BACKEND is clickhouse")
		}

		portStr := os.Getenv("CLICKHOUSE_PORT")
		if portStr == "" {
			config.ClickHousePort = 9000 // Default ClickHouse native port
		} else {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return nil, fmt.Errorf("invalid CLICKHOUSE_PORT: %w", err)
			}
			config.ClickHousePort = port
		}

		config.ClickHouseDatabase = os.Getenv("CLICKHOUSE_DATABASE")
		if config.ClickHouseDatabase == "" {
			config.ClickHouseDatabase = "default"
		}

		config.ClickHouseUser = os.Getenv("CLICKHOUSE_USER")
		if config.ClickHouseUser == "" {
			config.ClickHouseUser = "default"
		}

		config.ClickHousePassword = os.Getenv("CLICKHOUSE_PASSWORD")
		// Password is optional, can be empty

		config.ClickHouseUseTLS = os.Getenv("CLICKHOUSE_USE_TLS") == "true"
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND: %s (expected disk, clickhouse or mock)", config.StorageBackend)
	}

	return config, nil
}
