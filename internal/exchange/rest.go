package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"cryptoquery/config"
)

// NewHTTPClient builds the pooled HTTP client every connector shares.
func NewHTTPClient(cfg *config.Config) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.Exchanges.ConnectionPool.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Exchanges.ConnectionPool.MaxIdleConns,
		MaxConnsPerHost:     cfg.Exchanges.ConnectionPool.MaxConnsPerHost,
		IdleConnTimeout:     cfg.Exchanges.ConnectionPool.IdleConnTimeout,
		DisableCompression:  false,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.Exchanges.Timeout,
	}
}

// NewLimiter builds the per-connector request limiter from the shared rate
// limit configuration.
func NewLimiter(cfg *config.Config) *rate.Limiter {
	rps := cfg.Exchanges.RateLimit.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}
	burst := cfg.Exchanges.RateLimit.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// BaseURL normalises a configured endpoint override to scheme://host, falling
// back to the connector's production endpoint when the override is empty.
func BaseURL(override, fallback string) string {
	if override == "" {
		return fallback
	}
	parsed, err := url.Parse(override)
	if err != nil || parsed.Host == "" {
		return fallback
	}
	return fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
}

// GetJSON performs a rate-limited GET and decodes the JSON body into v.
func GetJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, reqURL string, v interface{}) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	return doJSON(client, req, v)
}

// PostJSON performs a rate-limited POST with a JSON body and decodes the
// response into v.
func PostJSON(ctx context.Context, client *http.Client, limiter *rate.Limiter, reqURL string, body interface{}, v interface{}) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return doJSON(client, req, v)
}

func doJSON(client *http.Client, req *http.Request, v interface{}) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
