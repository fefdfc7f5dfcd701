package config

import "time"

// APIConfig holds the credentials and transport settings for the spam
// check API.
type APIConfig struct {
	Key            string
	Secret         string
	BaseURL        string
	Timeout        time.Duration
	TrackEndUserIP bool
}

// Valid reports whether both credentials are present.
func (c APIConfig) Valid() bool {
	return c.Key != "" && c.Secret != ""
}

// GateConfig holds the middleware settings.
type GateConfig struct {
	FormParam    string
	RedirectPath string
	Notice       string
	Alert        string
}

// SpamConfig holds classification-adjacent settings.
type SpamConfig struct {
	WhitelistedDomains []string
	MaxMessageSize     int
}

// CacheConfig holds the verdict cache settings.
type CacheConfig struct {
	Type       string
	Enabled    bool
	SQLitePath string
	MySQLDSN   string
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	ListenAddress string
}

// GetAPI returns the API configuration. An unparseable timeout falls back
// to 30 seconds.
func (c *Config) GetAPI() APIConfig {
	timeout, err := c.GetDuration("api.timeout")
	if err != nil {
		timeout = 30 * time.Second
	}
	return APIConfig{
		Key:            c.GetString("api.key"),
		Secret:         c.GetString("api.secret"),
		BaseURL:        c.GetString("api.base_url"),
		Timeout:        timeout,
		TrackEndUserIP: c.GetBool("api.track_end_user_ip"),
	}
}

// GetGate returns the middleware configuration.
func (c *Config) GetGate() GateConfig {
	return GateConfig{
		FormParam:    c.GetString("gate.form_param"),
		RedirectPath: c.GetString("gate.redirect_path"),
		Notice:       c.GetString("gate.notice"),
		Alert:        c.GetString("gate.alert"),
	}
}

// GetSpam returns the classification settings.
func (c *Config) GetSpam() SpamConfig {
	return SpamConfig{
		WhitelistedDomains: c.GetStringSlice("spam.whitelisted_domains"),
		MaxMessageSize:     c.GetInt("spam.max_message_size"),
	}
}

// GetCache returns the cache configuration.
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		Type:       c.GetString("cache.type"),
		Enabled:    c.GetBool("cache.enabled"),
		SQLitePath: c.GetString("cache.sqlite_path"),
		MySQLDSN:   c.GetString("cache.mysql_dsn"),
	}
}

// GetServer returns the HTTP server configuration.
func (c *Config) GetServer() ServerConfig {
	return ServerConfig{
		ListenAddress: c.GetString("server.listen_address"),
	}
}
