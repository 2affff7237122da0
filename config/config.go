package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Cryptoquery CryptoqueryConfig `yaml:"cryptoquery"`
	Server      ServerConfig      `yaml:"server"`
	Exchanges   ExchangesConfig   `yaml:"exchanges"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type CryptoqueryConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type ServerConfig struct {
	DefaultExchange string `yaml:"default_exchange"`
	TopVolumesLimit int    `yaml:"top_volumes_limit"`
}

type ExchangesConfig struct {
	Timeout        time.Duration        `yaml:"timeout"`
	RateLimit      RateLimitConfig      `yaml:"rate_limit"`
	ConnectionPool ConnectionPoolConfig `yaml:"connection_pool"`
	Endpoints      EndpointsConfig      `yaml:"endpoints"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	BurstSize         int `yaml:"burst_size"`
}

type ConnectionPoolConfig struct {
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

// EndpointsConfig overrides the base URL per venue. Empty values fall back to
// each connector's production endpoint.
type EndpointsConfig struct {
	Binance     string `yaml:"binance"`
	Coinbase    string `yaml:"coinbase"`
	Kraken      string `yaml:"kraken"`
	Kucoin      string `yaml:"kucoin"`
	Hyperliquid string `yaml:"hyperliquid"`
	Huobi       string `yaml:"huobi"`
	Bitfinex    string `yaml:"bitfinex"`
	Bybit       string `yaml:"bybit"`
	Okx         string `yaml:"okx"`
	Mexc        string `yaml:"mexc"`
}

type MetricsConfig struct {
	CloudWatch CloudWatchConfig `yaml:"cloudwatch"`
}

type CloudWatchConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Region    string `yaml:"region"`
	Namespace string `yaml:"namespace"`
}

type LoggingConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"`
	Output        string `yaml:"output"`
	MaxAge        int    `yaml:"max_age"`
	DashboardName string `yaml:"dashboard_name"`
}

// DefaultConfig returns the configuration the server runs with when no file
// is present. MCP clients usually launch the binary without arguments, so
// every value has to have a workable default.
func DefaultConfig() *Config {
	return &Config{
		Cryptoquery: CryptoqueryConfig{
			Name:    "crypto-server",
			Version: "0.1.0",
		},
		Server: ServerConfig{
			DefaultExchange: "binance",
			TopVolumesLimit: 5,
		},
		Exchanges: ExchangesConfig{
			Timeout: 10 * time.Second,
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 10,
				BurstSize:         5,
			},
			ConnectionPool: ConnectionPoolConfig{
				MaxIdleConns:    10,
				MaxConnsPerHost: 10,
				IdleConnTimeout: 90 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stderr",
			MaxAge: 7,
		},
	}
}

// LoadConfig reads the configuration file at path and merges it over the
// defaults. A missing file is not an error: the defaults are returned so the
// server can be launched with no on-disk configuration at all.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	path = resolveEnvSpecificPath(path, defaultConfigPath, envConfigPaths)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyEnvOverrides lets environment variables win over file values, matching
// how the AWS settings behave.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CRYPTOQUERY_DEFAULT_EXCHANGE"); v != "" {
		cfg.Server.DefaultExchange = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("CRYPTOQUERY_TOP_VOLUMES_LIMIT"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Server.TopVolumesLimit = n
		}
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Metrics.CloudWatch.Region = strings.TrimSpace(v)
	}

	cfg.Server.DefaultExchange = strings.ToLower(strings.TrimSpace(cfg.Server.DefaultExchange))
}

func validateConfig(cfg *Config) error {
	if cfg.Cryptoquery.Name == "" {
		return fmt.Errorf("cryptoquery.name is required")
	}

	if cfg.Cryptoquery.Version == "" {
		return fmt.Errorf("cryptoquery.version is required")
	}

	if cfg.Server.DefaultExchange == "" {
		return fmt.Errorf("server.default_exchange is required")
	}

	if cfg.Server.TopVolumesLimit <= 0 {
		return fmt.Errorf("server.top_volumes_limit must be greater than 0")
	}

	if cfg.Exchanges.Timeout <= 0 {
		return fmt.Errorf("exchanges.timeout must be greater than 0")
	}

	if cfg.Exchanges.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("exchanges.rate_limit.requests_per_second must be greater than 0")
	}

	if cfg.Exchanges.ConnectionPool.MaxIdleConns <= 0 {
		return fmt.Errorf("exchanges.connection_pool.max_idle_conns must be greater than 0")
	}

	if cfg.Metrics.CloudWatch.Enabled && cfg.Metrics.CloudWatch.Region == "" && os.Getenv("AWS_REGION") == "" {
		return fmt.Errorf("metrics.cloudwatch.region is required when CloudWatch is enabled")
	}

	return nil
}
