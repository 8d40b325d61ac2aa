package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/x/values"
	"github.com/go-playground/validator/v10"
)

// Defaults
const (
	DefaultAddr            = "localhost:5555"
	DefaultEndpoint        = "/mcp"
	DefaultServerName      = "tool_registry"
	DefaultSECBaseURL      = "https://api.sec-api.io"
	DefaultFormType        = "10-K"
	DefaultSections        = "1,1A,7,7A,8"
	DefaultUserAgent       = "finAssistant/1.0 (contact: support@finassistant)"
	DefaultDownloadHost    = "www.sec.gov"
	DefaultTimeoutSec      = 30
	DefaultRequestsPerSec  = 5
	DefaultAlphaVantageURL = "https://mcp.alphavantage.co/mcp"
	DefaultRedisPrefix     = "fintools"
	DefaultLogLevel        = "INFO"
)

// Config of the fintools server
type Config struct {
	// LogLevel is one of DEBUG|INFO|WARNING|ERROR
	LogLevel     string             `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=DEBUG INFO NOTICE WARNING ERROR"`
	Server       ServerConfig       `json:"server" yaml:"server"`
	SEC          SECConfig          `json:"sec" yaml:"sec"`
	AlphaVantage AlphaVantageConfig `json:"alphavantage" yaml:"alphavantage"`
	Redis        RedisConfig        `json:"redis" yaml:"redis"`
}

// ServerConfig specifies the MCP listener
type ServerConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,startswith=/"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// SECConfig specifies the SEC API client and the filing pipeline
type SECConfig struct {
	APIKey          string `json:"api_key" yaml:"api_key" validate:"required"`
	BaseURL         string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	FormType        string `json:"form_type,omitempty" yaml:"form_type,omitempty"`
	DefaultSections string `json:"default_sections,omitempty" yaml:"default_sections,omitempty"`
	UserAgent       string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	DownloadHost    string `json:"download_host,omitempty" yaml:"download_host,omitempty"`
	TimeoutSec      int    `json:"timeout_sec,omitempty" yaml:"timeout_sec,omitempty" validate:"gte=0"`
	// RequestsPerSecond limits calls to the SEC API,
	// 0 uses the default and a negative value disables the limit.
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`
}

// AlphaVantageConfig specifies the remote MCP proxy
type AlphaVantageConfig struct {
	URL        string `json:"url,omitempty" yaml:"url,omitempty" validate:"omitempty,url"`
	APIKey     string `json:"api_key" yaml:"api_key" validate:"required"`
	TimeoutSec int    `json:"timeout_sec,omitempty" yaml:"timeout_sec,omitempty" validate:"gte=0"`
}

// RedisConfig specifies optional Redis cache.
// If URL is empty, the in-memory cache is used.
type RedisConfig struct {
	URL    string `json:"url,omitempty" yaml:"url,omitempty"`
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// Load returns the configuration from file, with defaults applied
func Load(file string) (*Config, error) {
	cfg := new(Config)
	if file != "" {
		err := configloader.UnmarshalAndExpand(file, cfg)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to load config %q", file)
		}
	}
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults populates empty values
func (c *Config) SetDefaults() {
	c.LogLevel = strings.ToUpper(values.StringsCoalesce(c.LogLevel, DefaultLogLevel))

	c.Server.Addr = values.StringsCoalesce(c.Server.Addr, DefaultAddr)
	c.Server.Endpoint = values.StringsCoalesce(c.Server.Endpoint, DefaultEndpoint)
	c.Server.Name = values.StringsCoalesce(c.Server.Name, DefaultServerName)

	c.SEC.BaseURL = values.StringsCoalesce(c.SEC.BaseURL, DefaultSECBaseURL)
	c.SEC.FormType = values.StringsCoalesce(c.SEC.FormType, DefaultFormType)
	c.SEC.DefaultSections = values.StringsCoalesce(c.SEC.DefaultSections, DefaultSections)
	c.SEC.UserAgent = values.StringsCoalesce(c.SEC.UserAgent, DefaultUserAgent)
	c.SEC.DownloadHost = values.StringsCoalesce(c.SEC.DownloadHost, DefaultDownloadHost)
	c.SEC.TimeoutSec = values.NumbersCoalesce(c.SEC.TimeoutSec, DefaultTimeoutSec)
	if c.SEC.RequestsPerSecond == 0 {
		c.SEC.RequestsPerSecond = DefaultRequestsPerSec
	}

	c.AlphaVantage.URL = values.StringsCoalesce(c.AlphaVantage.URL, DefaultAlphaVantageURL)
	c.AlphaVantage.TimeoutSec = values.NumbersCoalesce(c.AlphaVantage.TimeoutSec, DefaultTimeoutSec)

	c.Redis.Prefix = values.StringsCoalesce(c.Redis.Prefix, DefaultRedisPrefix)
}

var validate = validator.New()

// Validate returns error if the configuration is invalid
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}
