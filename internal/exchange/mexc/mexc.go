package mexc

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

const defaultBaseURL = "https://api.mexc.com"

// Client is a MEXC spot connector. The API follows the Binance v3 shape.
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
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Mexc, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "mexc" }

type tickerStats struct {
	Symbol    string `json:"symbol"`
	LastPrice string `json:"lastPrice"`
	HighPrice string `json:"highPrice"`
	LowPrice  string `json:"lowPrice"`
	Volume    string `json:"volume"`
	BidPrice  string `json:"bidPrice"`
	AskPrice  string `json:"askPrice"`
}

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("mexc", symbol)

	reqURL := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", c.baseURL, url.QueryEscape(native))
	var stats tickerStats
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, reqURL, &stats); err != nil {
		return nil, fmt.Errorf("mexc ticker %s: %w", symbol, err)
	}

	t := fromStats(stats)
	t.Symbol = symbol
	logger.IncrementTickerFetch(1)
	return &t, nil
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	var stats []tickerStats
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, c.baseURL+"/api/v3/ticker/24hr", &stats); err != nil {
		return nil, fmt.Errorf("mexc tickers: %w", err)
	}

	out := make([]models.Ticker, 0, len(stats))
	for _, s := range stats {
		out = append(out, fromStats(s))
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

func fromStats(s tickerStats) models.Ticker {
	return models.Ticker{
		Exchange:   "mexc",
		Symbol:     symbols.ToUnified("mexc", s.Symbol),
		Last:       models.ParseField(s.LastPrice),
		High:       models.ParseField(s.HighPrice),
		Low:        models.ParseField(s.LowPrice),
		BaseVolume: models.ParseField(s.Volume),
		Bid:        models.ParseField(s.BidPrice),
		Ask:        models.ParseField(s.AskPrice),
	}
}
