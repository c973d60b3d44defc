package client

import (
	"fmt"
	"strings"
)

// StoreCredentials are the per-store connection settings.
type StoreCredentials struct {
	// BaseURL is the store's admin API base address.
	BaseURL string `mapstructure:"base_url"`
	// AccessToken is the store's admin API bearer credential.
	AccessToken string `mapstructure:"access_token"`
}

// Config holds configuration for the Shopify extraction client.
type Config struct {
	// BaseURL is the default admin API base address, used when a store has
	// no specific override.
	BaseURL string `mapstructure:"base_url" default:""`
	// AccessToken is the default admin API access token.
	AccessToken string `mapstructure:"access_token" default:""`
	// Stores is the comma-separated list of store names to sync.
	Stores string `mapstructure:"stores" default:""`
	// StoreOverrides maps a store name to store-specific credentials.
	StoreOverrides map[string]StoreCredentials `mapstructure:"store_overrides"`
	// PageDelayMillis is the pause after each consumed page.
	PageDelayMillis int `mapstructure:"page_delay_millis" default:"250"`
	// MaxAttempts is the total number of attempts per page request.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// RetryBaseMillis is the first backoff delay; it doubles per attempt.
	RetryBaseMillis int `mapstructure:"retry_base_millis" default:"2000"`
	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// StoreNames returns the configured store list, defaulting to a single
// implicit store when none is configured.
func (c Config) StoreNames() []string {
	var names []string
	for _, name := range strings.Split(c.Stores, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{"default"}
	}
	return names
}

// CredentialsFor resolves the connection settings for a store: a
// store-specific override wins, otherwise the global default applies.
func (c Config) CredentialsFor(store string) (StoreCredentials, error) {
	creds := StoreCredentials{BaseURL: c.BaseURL, AccessToken: c.AccessToken}

	if override, ok := c.StoreOverrides[store]; ok {
		if override.BaseURL != "" {
			creds.BaseURL = override.BaseURL
		}
		if override.AccessToken != "" {
			creds.AccessToken = override.AccessToken
		}
	}

	if creds.BaseURL == "" {
		return StoreCredentials{}, fmt.Errorf("no base URL configured for store %q", store)
	}
	if creds.AccessToken == "" {
		return StoreCredentials{}, fmt.Errorf("no access token configured for store %q", store)
	}
	return creds, nil
}
