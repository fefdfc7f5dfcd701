package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config wraps the application configuration. Values come from an optional
// YAML file, overridden by IS_IT_SPAM_* environment variables, so
// IS_IT_SPAM_API_KEY / IS_IT_SPAM_API_SECRET / IS_IT_SPAM_BASE_URL work
// with no file at all.
type Config struct {
	v *viper.Viper
}

// New creates a configuration instance.
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/is-it-spam/")
	v.AddConfigPath("$HOME/.is-it-spam")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvPrefix("IS_IT_SPAM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The published variable is IS_IT_SPAM_BASE_URL, without the api
	// section in its name.
	_ = v.BindEnv("api.base_url", "IS_IT_SPAM_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file; defaults plus environment.
	}

	return &Config{v: v}, nil
}

// NewFromViper wraps an existing Viper instance.
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a Viper instance carrying only the defaults.
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	// API defaults. The env replacer maps api.key to IS_IT_SPAM_API_KEY.
	v.SetDefault("api.key", "")
	v.SetDefault("api.secret", "")
	v.SetDefault("api.base_url", "https://is-it-spam.com")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.track_end_user_ip", true)

	// Gate defaults
	v.SetDefault("gate.form_param", "")
	v.SetDefault("gate.redirect_path", "")
	v.SetDefault("gate.notice", "")
	v.SetDefault("gate.alert", "")

	// Spam defaults
	v.SetDefault("spam.whitelisted_domains", []string{})
	v.SetDefault("spam.max_message_size", 65536)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")
	v.SetDefault("cache.sqlite_path", "/data/spam_checks.db")
	v.SetDefault("cache.mysql_dsn", "user:password@tcp(localhost:3306)/is_it_spam?parseTime=true")

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:8080")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration.
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration.
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetBool gets a boolean value from the configuration.
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration.
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration parses a duration value from the configuration.
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.v
}
