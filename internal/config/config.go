package config

import (
	"fmt"
	"net/netip"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, loaded from QM_-prefixed
// environment variables.
type Config struct {
	Host string `env:"QM_HOST" envDefault:""`
	Port int    `env:"QM_PORT" envDefault:"8080"`

	// StorageType selects the storage backend: memory, sqlite or redis.
	StorageType string `env:"QM_STORAGE_TYPE" envDefault:"sqlite"`
	SqlitePath  string `env:"QM_SQLITE_PATH" envDefault:"quartermaster.db"`
	RedisURL    string `env:"QM_REDIS_URL"`

	// Realms is the set of realm names this server will serve. The realm
	// digest is opaque (it cannot be derived from any shared secret), so
	// pre-enumerating realm names here is the only guard against arbitrary
	// realm creation under trust-on-first-use.
	Realms []string `env:"QM_REALMS" envSeparator:","`

	// AllowedIPs is the client IP allow-list for the profile endpoints.
	AllowedIPs []string `env:"QM_ALLOWED_IPS" envSeparator:"," envDefault:"127.0.0.1"`

	// AllowedSids, when non-empty, restricts requests to these SIDs.
	// BlockedSids rejects unconditionally and takes precedence.
	AllowedSids []int64 `env:"QM_ALLOWED_SIDS" envSeparator:","`
	BlockedSids []int64 `env:"QM_BLOCKED_SIDS" envSeparator:","`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints that env tags cannot express.
func (c *Config) Validate() error {
	for _, ip := range c.AllowedIPs {
		if _, err := netip.ParseAddr(ip); err != nil {
			return fmt.Errorf("invalid allowed IP %q: %w", ip, err)
		}
	}
	for _, name := range c.Realms {
		if name == "" || len(name) > 32 {
			return fmt.Errorf("invalid realm name %q: must be 1-32 characters", name)
		}
	}
	return nil
}

// ParsedAllowedIPs returns the allow-list as parsed addresses.
func (c *Config) ParsedAllowedIPs() []netip.Addr {
	addrs := make([]netip.Addr, 0, len(c.AllowedIPs))
	for _, ip := range c.AllowedIPs {
		if addr, err := netip.ParseAddr(ip); err == nil {
			addrs = append(addrs, addr.Unmap())
		}
	}
	return addrs
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
