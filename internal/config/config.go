package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	BotToken string `envconfig:"BOT_TOKEN" required:"true"`
	DBPath   string `envconfig:"DB_PATH" default:"./data/reminder.db"`
	Timezone string `envconfig:"TZ_NAME" default:"Asia/Hong_Kong"` // IANA identifier, fixed for all chats
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`         // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`        // healthz
}

// Load reads environment variables into Config and verifies the timezone
// resolves. A missing token or unknown timezone is a startup-fatal error.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Location resolves the configured IANA timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
