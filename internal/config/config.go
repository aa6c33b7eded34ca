package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const (
	RowStoreSQLite = "sqlite"
	RowStoreSheets = "sheets"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DatabasePath                  string `mapstructure:"DATABASE_PATH"`
	RowStore                      string `mapstructure:"ROW_STORE"`
	SheetsSpreadsheetID           string `mapstructure:"SHEETS_SPREADSHEET_ID"`
	GoogleServiceAccountEmail     string `mapstructure:"GOOGLE_SERVICE_ACCOUNT_EMAIL"`
	GooglePrivateKey              string `mapstructure:"GOOGLE_PRIVATE_KEY"`
	EventCatalogPath              string `mapstructure:"EVENT_CATALOG_PATH"`
	DefaultEventLimit             int    `mapstructure:"DEFAULT_EVENT_LIMIT"`
	RegistrationsOpen             bool   `mapstructure:"REGISTRATIONS_OPEN"`
	RequireEmail                  bool   `mapstructure:"REQUIRE_EMAIL"`
	SerializeSubmissions          bool   `mapstructure:"SERIALIZE_SUBMISSIONS"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`
	LogLevel                      string `mapstructure:"LOG_LEVEL"`
	LogDevelopment                bool   `mapstructure:"LOG_DEVELOPMENT"`
}

func LoadConfig() *Config {
	config, err := Load()
	if err != nil {
		log.Fatalf("Unable to load config, %v", err)
	}
	return config
}

// Load reads the configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "registrations.db")
	v.SetDefault("ROW_STORE", RowStoreSQLite)
	v.SetDefault("DEFAULT_EVENT_LIMIT", 50)
	v.SetDefault("REGISTRATIONS_OPEN", true)
	v.SetDefault("REQUIRE_EMAIL", true)
	v.SetDefault("SERIALIZE_SUBMISSIONS", true)
	v.SetDefault("ENABLE_CORS", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)

	v.BindEnv("SHEETS_SPREADSHEET_ID")
	v.BindEnv("GOOGLE_SERVICE_ACCOUNT_EMAIL")
	v.BindEnv("GOOGLE_PRIVATE_KEY")
	v.BindEnv("EVENT_CATALOG_PATH")
	v.BindEnv("DISCORD_BOT_TOKEN")
	v.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	switch c.RowStore {
	case RowStoreSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the %s row store", RowStoreSQLite)
		}
	case RowStoreSheets:
		if c.SheetsSpreadsheetID == "" {
			return fmt.Errorf("SHEETS_SPREADSHEET_ID is required for the %s row store", RowStoreSheets)
		}
		if c.GoogleServiceAccountEmail == "" || c.GooglePrivateKey == "" {
			return fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY are required for the %s row store", RowStoreSheets)
		}
	default:
		return fmt.Errorf("unknown ROW_STORE %q", c.RowStore)
	}
	if c.DefaultEventLimit <= 0 {
		return fmt.Errorf("DEFAULT_EVENT_LIMIT must be positive, got %d", c.DefaultEventLimit)
	}
	return nil
}

// NotificationsEnabled reports whether a Discord notifier can be built.
func (c *Config) NotificationsEnabled() bool {
	return c.DiscordBotToken != "" && c.DiscordNotificationsChannelID != ""
}
