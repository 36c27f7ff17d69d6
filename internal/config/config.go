package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	Admin    AdminConfig    `mapstructure:"admin"`
	LinkedIn LinkedInConfig `mapstructure:"linkedin"`
	Privacy  PrivacyConfig  `mapstructure:"privacy"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// SMTPConfig holds contact form mail delivery settings.
type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	To   string `mapstructure:"to"`
}

// Configured reports whether credentials were provided.
func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Pass != ""
}

// AdminConfig holds admin area credentials.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LinkedInConfig controls the profile image lookup.
type LinkedInConfig struct {
	ProfileURL   string        `mapstructure:"profile_url"`
	ImageURL     string        `mapstructure:"image_url"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	UserAgent    string        `mapstructure:"user_agent"`
}

// PrivacyConfig controls visitor data retention.
type PrivacyConfig struct {
	Retention time.Duration `mapstructure:"retention"`
}

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// config key -> environment variable
var envBindings = map[string]string{
	"server.port":            "PORT",
	"server.mode":            "GIN_MODE",
	"database.path":          "DATABASE_PATH",
	"smtp.host":              "SMTP_HOST",
	"smtp.port":              "SMTP_PORT",
	"smtp.user":              "SMTP_USER",
	"smtp.pass":              "SMTP_PASS",
	"smtp.to":                "TO_EMAIL",
	"admin.username":         "ADMIN_USERNAME",
	"admin.password":         "ADMIN_PASSWORD",
	"linkedin.profile_url":   "LINKEDIN_PROFILE_URL",
	"linkedin.image_url":     "LINKEDIN_PROFILE_IMAGE_URL",
	"linkedin.cache_ttl":     "LINKEDIN_CACHE_TTL",
	"linkedin.fetch_timeout": "LINKEDIN_FETCH_TIMEOUT",
	"linkedin.user_agent":    "LINKEDIN_USER_AGENT",
	"privacy.retention":      "PRIVACY_RETENTION",
}

// Load reads configuration from defaults, an optional YAML file named by
// PORTFOLIO_CONFIG, and the environment (highest precedence).
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.path", "portfolio.db")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.user", "")
	v.SetDefault("smtp.pass", "")
	v.SetDefault("smtp.to", "adarshmisraa@gmail.com")
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("linkedin.profile_url", "https://www.linkedin.com/in/adarshmisra/")
	v.SetDefault("linkedin.image_url", "")
	v.SetDefault("linkedin.cache_ttl", time.Hour)
	v.SetDefault("linkedin.fetch_timeout", 10*time.Second)
	v.SetDefault("linkedin.user_agent", defaultUserAgent)
	v.SetDefault("privacy.retention", 365*24*time.Hour)

	if cfgPath := os.Getenv("PORTFOLIO_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.Server.Mode)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("DATABASE_PATH must not be empty")
	}
	if c.LinkedIn.CacheTTL <= 0 {
		return fmt.Errorf("LINKEDIN_CACHE_TTL must be > 0")
	}
	if c.LinkedIn.FetchTimeout <= 0 {
		return fmt.Errorf("LINKEDIN_FETCH_TIMEOUT must be > 0")
	}
	if c.Privacy.Retention <= 0 {
		return fmt.Errorf("PRIVACY_RETENTION must be > 0")
	}
	return nil
}

// AdminCredentials returns the configured admin login, falling back to the
// development defaults. defaulted is true when either default was used.
func (c Config) AdminCredentials() (username, password string, defaulted bool) {
	username, password = c.Admin.Username, c.Admin.Password
	if username == "" {
		username = DefaultAdminUsername
		defaulted = true
	}
	if password == "" {
		password = DefaultAdminPassword
		defaulted = true
	}
	return username, password, defaulted
}
