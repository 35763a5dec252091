package federation

import (
	"fmt"
	"strings"
)

// ProviderConfig holds the registration details for one external provider.
// The credentials are handed to the collaborator implementing Provider; the
// auth core itself only needs the name.
type ProviderConfig struct {
	// Name is the provider identifier (e.g., "google", "facebook").
	Name string `mapstructure:"name"`

	// ClientID is the OAuth2 client identifier issued by the provider.
	ClientID string `mapstructure:"client_id"`

	// ClientSecret is the OAuth2 client secret issued by the provider.
	ClientSecret string `mapstructure:"client_secret"`

	// RedirectURL is the callback URL registered with the provider.
	RedirectURL string `mapstructure:"redirect_url"`
}

// Config configures the external identity providers.
type Config struct {
	// Providers lists the registered external providers.
	Providers []ProviderConfig `mapstructure:"providers"`
}

// ApplyDefaults is a no-op; there is no sensible default provider set.
func (c *Config) ApplyDefaults() {}

// Validate checks that every configured provider is complete and uniquely
// named.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Providers))
	for i, p := range c.Providers {
		if p.Name == "" {
			return fmt.Errorf("providers[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("providers[%d]: duplicate provider %q", i, p.Name)
		}
		seen[p.Name] = true
		if p.ClientID == "" {
			return fmt.Errorf("provider %q: client_id is required", p.Name)
		}
		if p.ClientSecret == "" {
			return fmt.Errorf("provider %q: client_secret is required", p.Name)
		}
	}
	return nil
}

// Describe returns a human-readable one-liner for the startup summary.
func (c *Config) Describe() string {
	if len(c.Providers) == 0 {
		return "no external providers"
	}
	names := make([]string, len(c.Providers))
	for i, p := range c.Providers {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
