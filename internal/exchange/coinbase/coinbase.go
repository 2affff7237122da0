package coinbase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.exchange.coinbase.com"

// Client is a Coinbase Exchange spot connector over the public REST API.
type Client struct {
	rest    *http.Client
	limiter *rate.Limiter
	baseURL string
	log     *logger.Log
}

func New(cfg *config.Config) (exchange.Exchange, error) {
	return &Client{
		rest:    exchange.NewHTTPClient(cfg),
		limiter: exchange.NewLimiter(cfg),
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Coinbase, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "coinbase" }

// FetchTicker combines the product ticker (last trade, best bid/ask) with the
// 24h stats endpoint, since neither alone carries the full field set.
func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("coinbase", symbol)
	product := url.PathEscape(native)

	var tick struct {
		Price  string `json:"price"`
		Bid    string `json:"bid"`
		Ask    string `json:"ask"`
		Volume string `json:"volume"`
	}
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, fmt.Sprintf("%s/products/%s/ticker", c.baseURL, product), &tick); err != nil {
		return nil, fmt.Errorf("coinbase ticker %s: %w", symbol, err)
	}

	var stats struct {
		Open   string `json:"open"`
		High   string `json:"high"`
		Low    string `json:"low"`
		Volume string `json:"volume"`
		Last   string `json:"last"`
	}
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, fmt.Sprintf("%s/products/%s/stats", c.baseURL, product), &stats); err != nil {
		return nil, fmt.Errorf("coinbase stats %s: %w", symbol, err)
	}

	logger.IncrementTickerFetch(1)
	return &models.Ticker{
		Exchange:   "coinbase",
		Symbol:     symbol,
		Last:       models.ParseField(tick.Price),
		High:       models.ParseField(stats.High),
		Low:        models.ParseField(stats.Low),
		BaseVolume: models.ParseField(stats.Volume),
		Bid:        models.ParseField(tick.Bid),
		Ask:        models.ParseField(tick.Ask),
	}, nil
}

// FetchTickers is not available: Coinbase Exchange has no bulk ticker
// endpoint, and walking every product would take hundreds of requests.
func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	return nil, fmt.Errorf("coinbase bulk tickers: %w", exchange.ErrUnsupported)
}

func (c *Client) Close() error { return nil }
