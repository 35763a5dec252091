package server

import "fmt"

// Config holds HTTP server configuration.
type Config struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // seconds

	// CookieName is the session cookie name.
	CookieName string `mapstructure:"cookie_name"`

	// CookieSecure marks the session cookie Secure. Leave false only for
	// local development over plain HTTP.
	CookieSecure bool `mapstructure:"cookie_secure"`

	// LoginPath is where unauthenticated browser requests are redirected.
	LoginPath string `mapstructure:"login_path"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.CookieName == "" {
		c.CookieName = "authcore_session"
	}
	if c.LoginPath == "" {
		c.LoginPath = "/login"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 || c.IdleTimeout < 0 {
		return fmt.Errorf("timeouts must be non-negative")
	}
	if len(c.LoginPath) == 0 || c.LoginPath[0] != '/' {
		return fmt.Errorf("login_path must start with / (got: %q)", c.LoginPath)
	}
	return nil
}
