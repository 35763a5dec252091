package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Name != "authd" {
		t.Errorf("expected name 'authd', got %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if !cfg.Debug {
		t.Error("expected debug=true for development")
	}
	if cfg.Lockout.MaxFailedAttempts != 3 {
		t.Errorf("expected lockout default 3, got %d", cfg.Lockout.MaxFailedAttempts)
	}
	if cfg.Session.DefaultTTL != time.Hour {
		t.Errorf("expected session TTL 1h, got %v", cfg.Session.DefaultTTL)
	}
	if cfg.Password.MinLength != 8 {
		t.Errorf("expected password min length 8, got %d", cfg.Password.MinLength)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.ApplyDefaults()
		cfg.Session.Secret = "test-secret"
		return cfg
	}

	validCfg := valid()
	if err := validCfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad environment", func(c *Config) { c.Environment = "qa" }},
		{"missing session secret", func(c *Config) { c.Session.Secret = "" }},
		{"role policy without name", func(c *Config) {
			c.Policies.Roles = []RolePolicy{{Role: "admin"}}
		}},
		{"route policy without path", func(c *Config) {
			c.Policies.Routes = []RoutePolicy{{Policies: []string{"is-admin"}}}
		}},
		{"seed user without secret", func(c *Config) {
			c.Users = []SeedUser{{Identifier: "admin@test.com"}}
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yml")
	yaml := `
name: authd
session:
  secret: from-file
  default_ttl: 30m
lockout:
  max_failed_attempts: 5
`
	if err := os.WriteFile(configFile, []byte(yaml), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("SESSION_SECRET", "from-env")

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(configFile)); err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.ApplyDefaults()

	if cfg.Session.Secret != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.Session.Secret)
	}
	if cfg.Session.DefaultTTL != 30*time.Minute {
		t.Errorf("expected TTL from file, got %v", cfg.Session.DefaultTTL)
	}
	if cfg.Lockout.MaxFailedAttempts != 5 {
		t.Errorf("expected lockout from file, got %d", cfg.Lockout.MaxFailedAttempts)
	}
}

func TestLoad_MissingFilesIsFine(t *testing.T) {
	var cfg Config
	err := Load("authd", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "absent.yml")))
	if err != nil {
		t.Fatalf("expected missing config file to be tolerated, got %v", err)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	variants := envKeyVariants("LOCKOUT_MAX_FAILED_ATTEMPTS")
	want := map[string]bool{
		"lockout_max_failed_attempts": false,
		"lockout.max.failed.attempts": false,
		"lockout.max_failed_attempts": false,
	}
	for _, v := range variants {
		if _, ok := want[v]; ok {
			want[v] = true
		}
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("expected variant %q in %v", v, variants)
		}
	}
}
