package binance

import (
	"context"
	"fmt"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	gobinance "github.com/adshao/go-binance/v2"
)

// Client is a Binance spot connector backed by the go-binance client.
type Client struct {
	client *gobinance.Client
	log    *logger.Log
}

// New builds the connector. Public market data needs no API credentials.
func New(cfg *config.Config) (exchange.Exchange, error) {
	client := gobinance.NewClient("", "")
	client.HTTPClient = exchange.NewHTTPClient(cfg)
	if base := cfg.Exchanges.Endpoints.Binance; base != "" {
		client.BaseURL = exchange.BaseURL(base, client.BaseURL)
	}

	log := logger.GetLogger()
	log.WithComponent("binance").WithFields(logger.Fields{
		"timeout": cfg.Exchanges.Timeout,
	}).Debug("binance connector initialized")

	return &Client{client: client, log: log}, nil
}

func (c *Client) ID() string { return "binance" }

// FetchTicker returns the 24h rolling stats for a single pair.
func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("binance", symbol)

	stats, err := c.client.NewListPriceChangeStatsService().Symbol(native).Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance ticker %s: %w", symbol, err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("binance returned no ticker for %s", symbol)
	}

	t := fromStats(stats[0])
	t.Symbol = symbol
	logger.IncrementTickerFetch(1)
	return &t, nil
}

// FetchTickers returns the 24h rolling stats for every listed pair.
func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	stats, err := c.client.NewListPriceChangeStatsService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance tickers: %w", err)
	}

	out := make([]models.Ticker, 0, len(stats))
	for _, s := range stats {
		out = append(out, fromStats(s))
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

// Close satisfies the connector contract; the REST client holds no
// connection state beyond the shared transport pool.
func (c *Client) Close() error { return nil }

func fromStats(s *gobinance.PriceChangeStats) models.Ticker {
	return models.Ticker{
		Exchange:   "binance",
		Symbol:     symbols.ToUnified("binance", s.Symbol),
		Last:       models.ParseField(s.LastPrice),
		High:       models.ParseField(s.HighPrice),
		Low:        models.ParseField(s.LowPrice),
		BaseVolume: models.ParseField(s.Volume),
		Bid:        models.ParseField(s.BidPrice),
		Ask:        models.ParseField(s.AskPrice),
	}
}
