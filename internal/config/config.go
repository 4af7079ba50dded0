package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
	Commit      string `mapstructure:"commit"`
	Server      struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Admin struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"admin"`
	Mail MailConfig `mapstructure:"mail"`
	CORS struct {
		// AllowedOrigins holds origin rules, each either an exact origin
		// ("https://example.com") or a wildcard pattern ("https://*.example.com").
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Branding struct {
		BusinessName string `mapstructure:"businessName"`
	} `mapstructure:"branding"`
}

// MailConfig holds the SMTP transport and addressing settings. Host, Username,
// Password and OwnerTo must all be set for the notifier to be operational.
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	OwnerTo  string `mapstructure:"ownerTo"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Environment variables win over file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.path", "kc-backend.db")
	v.SetDefault("mail.port", 587)
	v.SetDefault("branding.businessName", "KC Services")

	v.SetConfigName("default")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/kc-backend")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, env vars cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional deployment variable names for the critical values.
	bindDirect(v, "server.port", "PORT")
	bindDirect(v, "database.path", "DB_PATH")
	bindDirect(v, "admin.token", "ADMIN_TOKEN")
	bindDirect(v, "mail.host", "SMTP_HOST")
	bindDirect(v, "mail.port", "SMTP_PORT")
	bindDirect(v, "mail.username", "SMTP_USER")
	bindDirect(v, "mail.password", "SMTP_PASS")
	bindDirect(v, "mail.from", "MAIL_FROM")
	bindDirect(v, "mail.ownerTo", "OWNER_EMAIL")
	bindDirect(v, "branding.businessName", "BUSINESS_NAME")
	bindDirect(v, "commit", "GIT_COMMIT")
	bindDirect(v, "logLevel", "LOG_LEVEL")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		v.Set("cors.allowedOrigins", splitAndTrim(origins))
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &config, nil
}

// bindDirect reads a single environment variable into a config key when set.
func bindDirect(v *viper.Viper, key, env string) {
	if value := os.Getenv(env); value != "" {
		v.Set(key, value)
	}
}

// splitAndTrim splits a comma-separated list and trims whitespace around each
// element, dropping empties.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
