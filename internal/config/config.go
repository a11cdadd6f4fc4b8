// Package config loads the bot settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/keshon/server-warden/internal/messages"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	GuildID      string `env:"GUILD_ID,required,notEmpty"`

	LogChannelID   string `env:"LOG_CHANNEL_ID"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile        string `env:"LOG_FILE"`
	LogTimezone    string `env:"LOG_TIMEZONE" envDefault:"Local"`
	LogChannelRate int    `env:"LOG_CHANNEL_RATE" envDefault:"5"`
	Locale         string `env:"LOCALE" envDefault:"en"`
}

// Load reads .env files when present and parses the environment. A missing .env is not
// an error; a missing required key is.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.LogChannelRate < 0 {
		return nil, fmt.Errorf("LOG_CHANNEL_RATE must not be negative, got %d", cfg.LogChannelRate)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves LOG_TIMEZONE.
func (c *Config) Location() (*time.Location, error) {
	if c.LogTimezone == "" || c.LogTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.LogTimezone)
	if err != nil {
		return nil, fmt.Errorf("LOG_TIMEZONE: %w", err)
	}
	return loc, nil
}

// MessageLocale resolves LOCALE, falling back to English.
func (c *Config) MessageLocale() messages.Locale { return messages.ParseLocale(c.Locale) }
