package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/irafid364-byte/Botie/core"
)

// PlaceholderToken is the value deployment templates ship with before a real token is filled in
const PlaceholderToken = "default-token"

type SlackAlertConfig struct {
	WebhookURL string `env:"SLACK_ALERT_WEBHOOK_URL"`
	LogsURL    string `env:"SERVER_LOGS_URL"`
}

// IsConfigured returns true if error alerts can be delivered
func (c SlackAlertConfig) IsConfigured() bool {
	return c.WebhookURL != ""
}

type AppConfig struct {
	DiscordToken              string        `env:"DISCORD_TOKEN"`
	Port                      int           `env:"PORT"                        envDefault:"3000"`
	BotActivity               string        `env:"BOT_ACTIVITY"                envDefault:"www.xxx.com"`
	Environment               string        `env:"ENVIRONMENT"                 envDefault:"dev"`
	CORSAllowedOrigins        []string      `env:"CORS_ALLOWED_ORIGINS"        envDefault:"*" envSeparator:","`
	MaxConcurrentInteractions int           `env:"MAX_CONCURRENT_INTERACTIONS" envDefault:"64"`
	ShutdownTimeout           time.Duration `env:"SHUTDOWN_TIMEOUT"            envDefault:"5s"`

	SlackAlertConfig SlackAlertConfig
}

// LoadConfig reads configuration from an optional .env file and the process environment.
// An empty envFile loads ./.env when it exists.
func LoadConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil {
		log.Printf("⚠️ Could not load .env file, continuing with system env vars")
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.SlackAlertConfig.IsConfigured() {
		log.Printf("✅ Slack error alerts configured")
	} else {
		log.Printf("⚠️ Slack error alerts not configured - errors will only be logged")
	}

	return &cfg, nil
}

// Validate checks the invariants the rest of the process relies on
func (c *AppConfig) Validate() error {
	token := strings.TrimSpace(c.DiscordToken)
	if token == "" {
		return core.ErrMissingToken
	}
	if token == PlaceholderToken {
		return core.ErrPlaceholderToken
	}
	c.DiscordToken = token

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MaxConcurrentInteractions < 1 {
		return fmt.Errorf("MAX_CONCURRENT_INTERACTIONS must be at least 1, got %d", c.MaxConcurrentInteractions)
	}

	origins := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, origin := range c.CORSAllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.CORSAllowedOrigins = origins

	return nil
}

// ListenAddr is the address the status server binds to
func (c *AppConfig) ListenAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
