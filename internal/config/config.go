package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"dappscope/internal/domain"
)

// Config holds all configuration for the application.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Registry RegistryConfig `mapstructure:"registry"`
	Indexer  IndexerConfig  `mapstructure:"indexer"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	Output   string `mapstructure:"output"`
}

// RegistryConfig holds settings for the dApp registry source.
type RegistryConfig struct {
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// IndexerConfig holds settings for the transaction indexer API.
type IndexerConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	MaxPages          int           `mapstructure:"max_pages"`
	PageSize          int           `mapstructure:"page_size"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// CacheConfig holds settings for the caching layer.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// CORSConfig holds the cross-origin headers sent with API responses.
type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "dappscope")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("registry.url", "")
	v.SetDefault("registry.timeout", "10s")
	v.SetDefault("registry.cache_ttl", "0s")
	v.SetDefault("indexer.base_url", "https://api.blockvision.org/v2/monad/account/transactions")
	v.SetDefault("indexer.api_key", "")
	v.SetDefault("indexer.max_pages", 4)
	v.SetDefault("indexer.page_size", 50)
	v.SetDefault("indexer.timeout", "10s")
	v.SetDefault("indexer.requests_per_second", 0.0)
	v.SetDefault("indexer.burst", 1)
	v.SetDefault("cache.default_expiration", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("cors.allowed_origin", "*")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("DAPPSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Names used by existing deployments.
	if err := v.BindEnv("indexer.api_key", "DAPPSCOPE_INDEXER_API_KEY", "BLOCKVISION_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind indexer api key env: %w", err)
	}
	if err := v.BindEnv("registry.url", "DAPPSCOPE_REGISTRY_URL", "REGISTRY_URL"); err != nil {
		return nil, fmt.Errorf("failed to bind registry url env: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports the first required setting that is missing.
// Missing settings are not fatal at startup; requests that need them fail instead.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Indexer.APIKey) == "" {
		return fmt.Errorf("%w: indexer api key is not set", domain.ErrConfiguration)
	}
	return c.Registry.Validate()
}

// Validate reports whether the registry source is configured.
func (c RegistryConfig) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("%w: registry url is not set", domain.ErrConfiguration)
	}
	return nil
}

func (c RegistryConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}

func (c IndexerConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}

func (c IndexerConfig) GetMaxPages() int {
	if c.MaxPages <= 0 {
		return 4
	}
	return c.MaxPages
}

func (c IndexerConfig) GetPageSize() int {
	if c.PageSize <= 0 {
		return 50
	}
	return c.PageSize
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
