package config

import (
	"errors"
	"strings"

	"github.com/andrew-solarstorm/go-packages/common"
)

type SplitConfig struct {
	// DBPath is the path to the BoltDB file holding stored expense splits.
	// Default: "./data/splits.db"
	DBPath string

	// PersistenceEnabled controls whether splits requested with persist=true are written to disk.
	// Default: true
	PersistenceEnabled bool

	// DefaultCurrency applies to requests that do not name a currency.
	// Default: "USD"
	DefaultCurrency string

	// CacheSize bounds the in-memory cache of recently computed splits.
	// Default: 1000
	CacheSize int

	// RateLimit is the sustained number of requests per second allowed per client IP.
	// Default: 10
	RateLimit int

	// RateBurst is the number of requests a client may send at once.
	// Default: 20
	RateBurst int
}

func (c *SplitConfig) Key() string {
	return SPLIT_CONFIG_KEY
}

func (c *SplitConfig) Load() error {
	c.DBPath = common.GetEnvOrDefault("SPLIT_DB_PATH", "./data/splits.db")
	c.PersistenceEnabled = common.GetEnvOrDefault("SPLIT_PERSISTENCE_ENABLED", "true") == "true"
	c.DefaultCurrency = strings.ToUpper(strings.TrimSpace(common.GetEnvOrDefault("SPLIT_DEFAULT_CURRENCY", "USD")))
	c.CacheSize = common.GetEnvOrDefaultInt("SPLIT_CACHE_SIZE", 1000)
	c.RateLimit = common.GetEnvOrDefaultInt("RATE_LIMIT_RATE", 10)
	c.RateBurst = common.GetEnvOrDefaultInt("RATE_LIMIT_BURST", 20)
	return c.Validate()
}

func (c *SplitConfig) Validate() error {
	if len(c.DefaultCurrency) != 3 {
		return errors.New("SPLIT_DEFAULT_CURRENCY must be a 3 letter currency code")
	}
	if c.PersistenceEnabled && c.DBPath == "" {
		return errors.New("SPLIT_DB_PATH is required when persistence is enabled")
	}
	if c.CacheSize <= 0 {
		return errors.New("SPLIT_CACHE_SIZE must be positive")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("rate limit and burst must be positive")
	}
	return nil
}
