package config

import (
	"os"
	"testing"
	"time"
)

// writeTempConfig creates a configuration file with the provided content and
// returns its path.
func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", "cfg-*.yml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close temp file: %v", err)
	}
	return f.Name()
}

func TestLoadConfig(t *testing.T) {
	content := `cryptoquery:
  name: "TestServer"
  version: "1.0"
server:
  default_exchange: KRAKEN
  top_volumes_limit: 3
exchanges:
  timeout: 5s
`
	path := writeTempConfig(t, content)
	defer os.Remove(path)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Cryptoquery.Name != "TestServer" {
		t.Errorf("unexpected name: %s", cfg.Cryptoquery.Name)
	}
	if cfg.Server.DefaultExchange != "kraken" {
		t.Errorf("default exchange not lowercased: %s", cfg.Server.DefaultExchange)
	}
	if cfg.Server.TopVolumesLimit != 3 {
		t.Errorf("unexpected top volumes limit: %d", cfg.Server.TopVolumesLimit)
	}
	if cfg.Exchanges.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout: %s", cfg.Exchanges.Timeout)
	}
	// Unset values keep their defaults.
	if cfg.Exchanges.RateLimit.RequestsPerSecond != 10 {
		t.Errorf("rate limit default lost: %d", cfg.Exchanges.RateLimit.RequestsPerSecond)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig("does/not/exist.yml")
	if err != nil {
		t.Fatalf("missing file must fall back to defaults: %v", err)
	}
	if cfg.Cryptoquery.Name != "crypto-server" {
		t.Errorf("unexpected default name: %s", cfg.Cryptoquery.Name)
	}
	if cfg.Server.DefaultExchange != "binance" {
		t.Errorf("unexpected default exchange: %s", cfg.Server.DefaultExchange)
	}
	if cfg.Logging.Output != "stderr" {
		t.Errorf("logs must default to stderr, got %s", cfg.Logging.Output)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	content := `server:
  top_volumes_limit: -1
`
	path := writeTempConfig(t, content)
	defer os.Remove(path)

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected validation error for negative limit")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CRYPTOQUERY_DEFAULT_EXCHANGE", "Bybit")
	t.Setenv("CRYPTOQUERY_TOP_VOLUMES_LIMIT", "7")

	cfg, err := LoadConfig("does/not/exist.yml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Server.DefaultExchange != "bybit" {
		t.Errorf("env override not applied: %s", cfg.Server.DefaultExchange)
	}
	if cfg.Server.TopVolumesLimit != 7 {
		t.Errorf("env override not applied: %d", cfg.Server.TopVolumesLimit)
	}
}

func TestAppEnvironmentAliases(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	if got := AppEnvironment(); got != EnvironmentProduction {
		t.Errorf("alias not resolved: %s", got)
	}
	if !IsProductionLike(EnvironmentStaging) {
		t.Errorf("staging should be production-like")
	}
}
