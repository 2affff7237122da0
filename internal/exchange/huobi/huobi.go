package huobi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.huobi.pro"

// Client is a Huobi spot connector. Huobi reports numeric JSON, so values go
// through json.Number to keep full precision.
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
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Huobi, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "huobi" }

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("huobi", symbol)

	var resp struct {
		Status string `json:"status"`
		ErrMsg string `json:"err-msg"`
		Tick   struct {
			High   json.Number   `json:"high"`
			Low    json.Number   `json:"low"`
			Close  json.Number   `json:"close"`
			Amount json.Number   `json:"amount"`
			Bid    []json.Number `json:"bid"`
			Ask    []json.Number `json:"ask"`
		} `json:"tick"`
	}

	reqURL := fmt.Sprintf("%s/market/detail/merged?symbol=%s", c.baseURL, url.QueryEscape(native))
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("huobi ticker %s: %w", symbol, err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("huobi ticker %s: %s", symbol, resp.ErrMsg)
	}

	logger.IncrementTickerFetch(1)
	return &models.Ticker{
		Exchange:   "huobi",
		Symbol:     symbol,
		Last:       fromNumber(resp.Tick.Close),
		High:       fromNumber(resp.Tick.High),
		Low:        fromNumber(resp.Tick.Low),
		BaseVolume: fromNumber(resp.Tick.Amount),
		Bid:        fromNumberAt(resp.Tick.Bid, 0),
		Ask:        fromNumberAt(resp.Tick.Ask, 0),
	}, nil
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	var resp struct {
		Status string `json:"status"`
		ErrMsg string `json:"err-msg"`
		Data   []struct {
			Symbol string      `json:"symbol"`
			High   json.Number `json:"high"`
			Low    json.Number `json:"low"`
			Close  json.Number `json:"close"`
			Amount json.Number `json:"amount"`
			Bid    json.Number `json:"bid"`
			Ask    json.Number `json:"ask"`
		} `json:"data"`
	}

	if err := exchange.GetJSON(ctx, c.rest, c.limiter, c.baseURL+"/market/tickers", &resp); err != nil {
		return nil, fmt.Errorf("huobi tickers: %w", err)
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("huobi tickers: %s", resp.ErrMsg)
	}

	out := make([]models.Ticker, 0, len(resp.Data))
	for _, d := range resp.Data {
		out = append(out, models.Ticker{
			Exchange:   "huobi",
			Symbol:     symbols.ToUnified("huobi", d.Symbol),
			Last:       fromNumber(d.Close),
			High:       fromNumber(d.High),
			Low:        fromNumber(d.Low),
			BaseVolume: fromNumber(d.Amount),
			Bid:        fromNumber(d.Bid),
			Ask:        fromNumber(d.Ask),
		})
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

func fromNumber(n json.Number) decimal.NullDecimal {
	return models.ParseField(n.String())
}

func fromNumberAt(values []json.Number, i int) decimal.NullDecimal {
	if i < len(values) {
		return fromNumber(values[i])
	}
	return decimal.NullDecimal{}
}
