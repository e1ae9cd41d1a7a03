package server

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the resolved server configuration.
type Config struct {
	Addr         string
	DBPath       string
	NASABaseURL  string
	NASAAPIKey   string
	CatalogLimit int
	LogLevel     string
}

func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		DBPath:       "data/firewall.db",
		CatalogLimit: 20,
		LogLevel:     "info",
	}
}

// fileConfig mirrors the YAML file. Every field is optional; absent
// values keep the defaults.
type fileConfig struct {
	Server *struct {
		Addr *string `yaml:"addr"`
	} `yaml:"server"`
	Database *struct {
		Path *string `yaml:"path"`
	} `yaml:"database"`
	NASA *struct {
		BaseURL      *string `yaml:"base_url"`
		APIKey       *string `yaml:"api_key"`
		CatalogLimit *int    `yaml:"catalog_limit"`
	} `yaml:"nasa"`
	Log *struct {
		Level *string `yaml:"level"`
	} `yaml:"log"`
}

// ConfigOverrides holds optional command-line overrides applied on top
// of the file.
type ConfigOverrides struct {
	Addr       *string
	DBPath     *string
	NASAAPIKey *string
}

func (o ConfigOverrides) apply(base Config) Config {
	if o.Addr != nil {
		base.Addr = *o.Addr
	}
	if o.DBPath != nil {
		base.DBPath = *o.DBPath
	}
	if o.NASAAPIKey != nil {
		base.NASAAPIKey = *o.NASAAPIKey
	}
	return base
}

func mergeFileConfig(base Config, cfg *fileConfig) Config {
	if cfg == nil {
		return base
	}
	if cfg.Server != nil && cfg.Server.Addr != nil {
		base.Addr = *cfg.Server.Addr
	}
	if cfg.Database != nil && cfg.Database.Path != nil {
		base.DBPath = *cfg.Database.Path
	}
	if cfg.NASA != nil {
		if cfg.NASA.BaseURL != nil {
			base.NASABaseURL = *cfg.NASA.BaseURL
		}
		if cfg.NASA.APIKey != nil {
			base.NASAAPIKey = *cfg.NASA.APIKey
		}
		if cfg.NASA.CatalogLimit != nil {
			base.CatalogLimit = *cfg.NASA.CatalogLimit
		}
	}
	if cfg.Log != nil && cfg.Log.Level != nil {
		base.LogLevel = *cfg.Log.Level
	}
	return base
}

// LoadConfig reads the YAML file at path over the defaults and applies
// the overrides. A missing file is not an error; a malformed one is.
func LoadConfig(path string, overrides ConfigOverrides) (Config, error) {
	base := DefaultConfig()
	if path != "" {
		cleanPath := filepath.Clean(path)
		data, err := os.ReadFile(cleanPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return base, fmt.Errorf("read config %q: %w", cleanPath, err)
			}
		} else {
			var cfg fileConfig
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return base, fmt.Errorf("parse config %q: %w", cleanPath, err)
			}
			base = mergeFileConfig(base, &cfg)
		}
	}
	return overrides.apply(base).sanitize(), nil
}

func (c Config) sanitize() Config {
	if c.Addr == "" {
		c.Addr = DefaultConfig().Addr
	}
	if c.DBPath == "" {
		c.DBPath = DefaultConfig().DBPath
	}
	if c.CatalogLimit <= 0 {
		c.CatalogLimit = DefaultConfig().CatalogLimit
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	return c
}
