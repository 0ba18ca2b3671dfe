package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds the HTTP listener settings for the webhook endpoint.
type ServerConfig struct {
	Listen string `yaml:"listen" envconfig:"SERVER_LISTEN"`
	Port   int    `yaml:"port" envconfig:"PORT"`
	// ShutdownTimeoutSeconds bounds graceful shutdown; 0 -> default
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds" envconfig:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// WhatsAppConfig holds Green API credentials and the number this deployment serves.
type WhatsAppConfig struct {
	APIURL      string `yaml:"api_url" envconfig:"GREEN_API_URL"`
	InstanceID  string `yaml:"instance_id" envconfig:"GREEN_API_INSTANCE_ID"`
	Token       string `yaml:"token" envconfig:"GREEN_API_TOKEN"`
	PhoneNumber string `yaml:"phone_number" envconfig:"PHONE_NUMBER"`
	MockMode    bool   `yaml:"mock_mode" envconfig:"MOCK_MODE"`
	// CourtesyReply controls whether unregistered senders get an install hint.
	// A nil value means "not set" and defaults to true.
	CourtesyReply *bool `yaml:"courtesy_reply" envconfig:"COURTESY_REPLY"`
}

// ShopConfig points at the product-management API of the shop.
type ShopConfig struct {
	URL       string `yaml:"url" envconfig:"SHOP_URL"`
	AuthToken string `yaml:"auth_token" envconfig:"AUTH_TOKEN"`
}

// SessionConfig controls the lifetime of multi-step conversations.
type SessionConfig struct {
	TimeoutMS              int `yaml:"timeout_ms" envconfig:"SESSION_TIMEOUT_MS"`
	CleanupIntervalSeconds int `yaml:"cleanup_interval_seconds" envconfig:"SESSION_CLEANUP_INTERVAL_SECONDS"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LOG_LEVEL"`
	Format      string `yaml:"format" envconfig:"LOG_FORMAT"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir" envconfig:"LOG_DIR"`
	File        string `yaml:"file" envconfig:"LOG_FILE"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	MaxBackups  int    `yaml:"max_backups"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile" envconfig:"LOG_PROFILE"`
}

// Config aggregates everything the bot needs at runtime.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	Shop     ShopConfig     `yaml:"shop"`
	Session  SessionConfig  `yaml:"session"`
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
}

const (
	defaultListen          = "0.0.0.0"
	defaultPort            = 3000
	defaultShutdownTimeout = 10
	defaultAPIURL          = "https://api.green-api.com"
	defaultSessionTimeout  = 300000
	minSessionTimeout      = 1000
	defaultCleanupInterval = 60
)

// Load reads configuration from an optional YAML file and environment variables.
// A missing file is not an error so env-only deployments work.
func Load(path string) (*Config, error) {
	var cfg Config

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse YAML config: %w", err)
			}
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = defaultListen
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be within 1..65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = defaultShutdownTimeout
	}

	cfg.WhatsApp.PhoneNumber = strings.TrimPrefix(strings.TrimSpace(cfg.WhatsApp.PhoneNumber), "+")
	if cfg.WhatsApp.PhoneNumber == "" {
		return fmt.Errorf("whatsapp.phone_number is required (PHONE_NUMBER)")
	}
	if strings.TrimSpace(cfg.WhatsApp.APIURL) == "" {
		cfg.WhatsApp.APIURL = defaultAPIURL
	}
	cfg.WhatsApp.APIURL = strings.TrimRight(cfg.WhatsApp.APIURL, "/")
	if !cfg.WhatsApp.MockMode {
		if strings.TrimSpace(cfg.WhatsApp.InstanceID) == "" {
			return fmt.Errorf("whatsapp.instance_id is required unless mock_mode is on (GREEN_API_INSTANCE_ID)")
		}
		if strings.TrimSpace(cfg.WhatsApp.Token) == "" {
			return fmt.Errorf("whatsapp.token is required unless mock_mode is on (GREEN_API_TOKEN)")
		}
	}
	if cfg.WhatsApp.CourtesyReply == nil {
		on := true
		cfg.WhatsApp.CourtesyReply = &on
	}

	cfg.Shop.URL = strings.TrimRight(strings.TrimSpace(cfg.Shop.URL), "/")
	if cfg.Shop.URL == "" {
		return fmt.Errorf("shop.url is required (SHOP_URL)")
	}
	if strings.TrimSpace(cfg.Shop.AuthToken) == "" {
		return fmt.Errorf("shop.auth_token is required (AUTH_TOKEN)")
	}

	if cfg.Session.TimeoutMS == 0 {
		cfg.Session.TimeoutMS = defaultSessionTimeout
	}
	if cfg.Session.TimeoutMS < minSessionTimeout {
		return fmt.Errorf("session.timeout_ms must be >= %d, got %d", minSessionTimeout, cfg.Session.TimeoutMS)
	}
	// Negative disables the sweep; expired sessions are still evicted on read.
	if cfg.Session.CleanupIntervalSeconds == 0 {
		cfg.Session.CleanupIntervalSeconds = defaultCleanupInterval
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Logging.Format)) {
	case "", "json", "kv", "text", "pretty":
	default:
		return fmt.Errorf("invalid logging.format %q; allowed: json, kv", cfg.Logging.Format)
	}

	if cfg.Database.Enabled {
		if err := cfg.Database.Normalize(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

// CourtesyReplyEnabled reports whether unregistered senders receive a reply.
func (c *Config) CourtesyReplyEnabled() bool {
	if c == nil || c.WhatsApp.CourtesyReply == nil {
		return true
	}
	return *c.WhatsApp.CourtesyReply
}
