package kraken

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

const defaultBaseURL = "https://api.kraken.com"

// Client is a Kraken spot connector over the public REST API.
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
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Kraken, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "kraken" }

// tickerInfo follows Kraken's array-valued ticker schema: c is [price, lot
// volume]; v, h and l carry [today, last 24h].
type tickerInfo struct {
	Ask    []string `json:"a"`
	Bid    []string `json:"b"`
	Last   []string `json:"c"`
	Volume []string `json:"v"`
	High   []string `json:"h"`
	Low    []string `json:"l"`
}

type tickerResponse struct {
	Error  []string              `json:"error"`
	Result map[string]tickerInfo `json:"result"`
}

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("kraken", symbol)

	reqURL := fmt.Sprintf("%s/0/public/Ticker?pair=%s", c.baseURL, url.QueryEscape(native))
	var resp tickerResponse
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("kraken ticker %s: %w", symbol, err)
	}
	if len(resp.Error) > 0 {
		return nil, fmt.Errorf("kraken ticker %s: %s", symbol, resp.Error[0])
	}

	// Kraken keys the result by its own canonical pair name, which may not
	// match the requested one. A single pair was requested, so take the
	// first entry.
	for _, info := range resp.Result {
		t := fromInfo(info)
		t.Symbol = symbol
		logger.IncrementTickerFetch(1)
		return &t, nil
	}
	return nil, fmt.Errorf("kraken returned no ticker for %s", symbol)
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	var resp tickerResponse
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, c.baseURL+"/0/public/Ticker", &resp); err != nil {
		return nil, fmt.Errorf("kraken tickers: %w", err)
	}
	if len(resp.Error) > 0 {
		return nil, fmt.Errorf("kraken tickers: %s", resp.Error[0])
	}

	out := make([]models.Ticker, 0, len(resp.Result))
	for pair, info := range resp.Result {
		t := fromInfo(info)
		t.Symbol = symbols.ToUnified("kraken", pair)
		out = append(out, t)
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

func fromInfo(info tickerInfo) models.Ticker {
	return models.Ticker{
		Exchange:   "kraken",
		Last:       models.ParseField(at(info.Last, 0)),
		High:       models.ParseField(at(info.High, 1)),
		Low:        models.ParseField(at(info.Low, 1)),
		BaseVolume: models.ParseField(at(info.Volume, 1)),
		Bid:        models.ParseField(at(info.Bid, 0)),
		Ask:        models.ParseField(at(info.Ask, 0)),
	}
}

func at(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
