package config_test

import (
	"testing"

	"github.com/effective-security/fintools/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	cfg, err := config.Load("testdata/fintools.yaml")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:7777", cfg.Server.Addr)
	assert.Equal(t, config.DefaultEndpoint, cfg.Server.Endpoint)
	assert.Equal(t, config.DefaultServerName, cfg.Server.Name)

	assert.Equal(t, "sec-key", cfg.SEC.APIKey)
	assert.Equal(t, config.DefaultSECBaseURL, cfg.SEC.BaseURL)
	assert.Equal(t, "10-K", cfg.SEC.FormType)
	assert.Equal(t, "1,7", cfg.SEC.DefaultSections)
	assert.Equal(t, 10, cfg.SEC.TimeoutSec)
	assert.Equal(t, float64(config.DefaultRequestsPerSec), cfg.SEC.RequestsPerSecond)
	assert.Equal(t, config.DefaultUserAgent, cfg.SEC.UserAgent)
	assert.Equal(t, "www.sec.gov", cfg.SEC.DownloadHost)

	assert.Equal(t, "av-key", cfg.AlphaVantage.APIKey)
	assert.Equal(t, config.DefaultAlphaVantageURL, cfg.AlphaVantage.URL)
	assert.Equal(t, 30, cfg.AlphaVantage.TimeoutSec)

	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "fintools", cfg.Redis.Prefix)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := config.Load("testdata/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestValidate(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, "INFO", cfg.LogLevel)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	cfg.SEC.APIKey = "k"
	cfg.AlphaVantage.APIKey = "k"
	assert.NoError(t, cfg.Validate())

	cfg.Server.Endpoint = "mcp"
	assert.Error(t, cfg.Validate())
	cfg.Server.Endpoint = "/mcp"

	cfg.LogLevel = "LOUD"
	assert.Error(t, cfg.Validate())
}

func TestRequestsPerSecond(t *testing.T) {
	cfg := &config.Config{}
	cfg.SetDefaults()
	assert.Equal(t, float64(config.DefaultRequestsPerSec), cfg.SEC.RequestsPerSecond)

	cfg = &config.Config{SEC: config.SECConfig{RequestsPerSecond: 2.5}}
	cfg.SetDefaults()
	assert.Equal(t, 2.5, cfg.SEC.RequestsPerSecond)

	// negative turns the limit off
	cfg = &config.Config{SEC: config.SECConfig{APIKey: "k", RequestsPerSecond: -1}}
	cfg.AlphaVantage.APIKey = "k"
	cfg.SetDefaults()
	assert.Equal(t, float64(-1), cfg.SEC.RequestsPerSecond)
	assert.NoError(t, cfg.Validate())
}
