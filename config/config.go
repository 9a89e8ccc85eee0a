package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateBurst       int     `yaml:"rate_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// SearchConfig bounds the nearby-space search. Radii are meters on the
// wire; the engine works in kilometers.
type SearchConfig struct {
	DefaultRadiusM int     `yaml:"default_radius_m"`
	MinRadiusKm    float64 `yaml:"min_radius_km"`
	MaxRadiusKm    float64 `yaml:"max_radius_km"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used by
// tests and as the base when no file overrides exist.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateBurst <= 0 {
		cfg.Server.RateBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 60
	}

	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 30
	}

	if cfg.Search.DefaultRadiusM <= 0 {
		cfg.Search.DefaultRadiusM = 2000
	}
	if cfg.Search.MinRadiusKm <= 0 {
		cfg.Search.MinRadiusKm = 0.1
	}
	if cfg.Search.MaxRadiusKm <= 0 {
		cfg.Search.MaxRadiusKm = 20
	}
}
