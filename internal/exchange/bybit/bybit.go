package bybit

import (
	"context"
	"encoding/json"
	"fmt"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	gobybit "github.com/bybit-exchange/bybit.go.api"
)

const defaultBaseURL = "https://api.bybit.com"

// Client is a Bybit spot connector backed by the official HTTP client.
type Client struct {
	client *gobybit.Client
	log    *logger.Log
}

// New builds the connector. Public market data needs no API credentials.
func New(cfg *config.Config) (exchange.Exchange, error) {
	base := exchange.BaseURL(cfg.Exchanges.Endpoints.Bybit, defaultBaseURL)

	client := gobybit.NewBybitHttpClient("", "", gobybit.WithBaseURL(base))
	client.HTTPClient = exchange.NewHTTPClient(cfg)

	log := logger.GetLogger()
	log.WithComponent("bybit").WithFields(logger.Fields{
		"base_url": base,
	}).Debug("bybit connector initialized")

	return &Client{client: client, log: log}, nil
}

func (c *Client) ID() string { return "bybit" }

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("bybit", symbol)

	list, err := c.marketTickers(ctx, map[string]interface{}{
		"category": "spot",
		"symbol":   native,
	})
	if err != nil {
		return nil, fmt.Errorf("bybit ticker %s: %w", symbol, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("bybit returned no ticker for %s", symbol)
	}

	t := fromEntry(list[0])
	t.Symbol = symbol
	logger.IncrementTickerFetch(1)
	return &t, nil
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	list, err := c.marketTickers(ctx, map[string]interface{}{
		"category": "spot",
	})
	if err != nil {
		return nil, fmt.Errorf("bybit tickers: %w", err)
	}

	out := make([]models.Ticker, 0, len(list))
	for _, e := range list {
		out = append(out, fromEntry(e))
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

type tickerEntry struct {
	Symbol       string `json:"symbol"`
	LastPrice    string `json:"lastPrice"`
	HighPrice24h string `json:"highPrice24h"`
	LowPrice24h  string `json:"lowPrice24h"`
	Volume24h    string `json:"volume24h"`
	Bid1Price    string `json:"bid1Price"`
	Ask1Price    string `json:"ask1Price"`
}

// marketTickers calls the v5 tickers endpoint and re-decodes the untyped
// Result payload, mirroring how other services consume this client.
func (c *Client) marketTickers(ctx context.Context, params map[string]interface{}) ([]tickerEntry, error) {
	resp, err := c.client.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	if err != nil {
		return nil, err
	}
	if resp.RetCode != 0 {
		return nil, fmt.Errorf("bybit error %d: %s", resp.RetCode, resp.RetMsg)
	}

	payload, err := json.Marshal(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var result struct {
		Category string        `json:"category"`
		List     []tickerEntry `json:"list"`
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return result.List, nil
}

func fromEntry(e tickerEntry) models.Ticker {
	return models.Ticker{
		Exchange:   "bybit",
		Symbol:     symbols.ToUnified("bybit", e.Symbol),
		Last:       models.ParseField(e.LastPrice),
		High:       models.ParseField(e.HighPrice24h),
		Low:        models.ParseField(e.LowPrice24h),
		BaseVolume: models.ParseField(e.Volume24h),
		Bid:        models.ParseField(e.Bid1Price),
		Ask:        models.ParseField(e.Ask1Price),
	}
}
