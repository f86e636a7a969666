package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralConfigDefaults(t *testing.T) {
	gc := &GeneralConfig{}
	require.NoError(t, gc.Load())

	assert.Equal(t, "8080", gc.HTTPPort)
	assert.Equal(t, "localhost", gc.HTTPHost)
	assert.Equal(t, DevEnv, gc.Env)
	assert.Equal(t, "INFO", gc.LogLevel)
	assert.True(t, gc.IsDev())
	assert.Equal(t, GENERAL_CONFIG_KEY, gc.Key())
}

func TestGeneralConfigRejectsUnknownEnv(t *testing.T) {
	t.Setenv("ENV", "qa")
	gc := &GeneralConfig{}
	assert.Error(t, gc.Load())
}

func TestSplitConfigFromEnv(t *testing.T) {
	t.Setenv("SPLIT_DB_PATH", "/tmp/x.db")
	t.Setenv("SPLIT_PERSISTENCE_ENABLED", "false")
	t.Setenv("SPLIT_DEFAULT_CURRENCY", "eur")
	t.Setenv("SPLIT_CACHE_SIZE", "5")
	t.Setenv("RATE_LIMIT_RATE", "3")
	t.Setenv("RATE_LIMIT_BURST", "4")

	c := &SplitConfig{}
	require.NoError(t, c.Load())

	assert.Equal(t, "/tmp/x.db", c.DBPath)
	assert.False(t, c.PersistenceEnabled)
	assert.Equal(t, "EUR", c.DefaultCurrency)
	assert.Equal(t, 5, c.CacheSize)
	assert.Equal(t, 3, c.RateLimit)
	assert.Equal(t, 4, c.RateBurst)
	assert.Equal(t, SPLIT_CONFIG_KEY, c.Key())
}

func TestSplitConfigValidate(t *testing.T) {
	valid := SplitConfig{DBPath: "a.db", PersistenceEnabled: true, DefaultCurrency: "USD", CacheSize: 1, RateLimit: 1, RateBurst: 1}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*SplitConfig)
	}{
		{"bad currency", func(c *SplitConfig) { c.DefaultCurrency = "DOLLAR" }},
		{"missing db path", func(c *SplitConfig) { c.DBPath = "" }},
		{"zero cache", func(c *SplitConfig) { c.CacheSize = 0 }},
		{"zero rate", func(c *SplitConfig) { c.RateLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	noDisk := valid
	noDisk.PersistenceEnabled = false
	noDisk.DBPath = ""
	assert.NoError(t, noDisk.Validate())
}
