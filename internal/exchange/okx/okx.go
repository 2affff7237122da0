package okx

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

const defaultBaseURL = "https://www.okx.com"

// Client is an OKX spot connector over the public v5 REST API.
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
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Okx, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "okx" }

type tickerData struct {
	InstID  string `json:"instId"`
	Last    string `json:"last"`
	AskPx   string `json:"askPx"`
	BidPx   string `json:"bidPx"`
	High24h string `json:"high24h"`
	Low24h  string `json:"low24h"`
	Vol24h  string `json:"vol24h"`
}

type tickerResponse struct {
	Code string       `json:"code"`
	Msg  string       `json:"msg"`
	Data []tickerData `json:"data"`
}

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("okx", symbol)

	reqURL := fmt.Sprintf("%s/api/v5/market/ticker?instId=%s", c.baseURL, url.QueryEscape(native))
	var resp tickerResponse
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("okx ticker %s: %w", symbol, err)
	}
	if resp.Code != "0" {
		return nil, fmt.Errorf("okx ticker %s: %s", symbol, resp.Msg)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("okx returned no ticker for %s", symbol)
	}

	t := fromData(resp.Data[0])
	t.Symbol = symbol
	logger.IncrementTickerFetch(1)
	return &t, nil
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	var resp tickerResponse
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, c.baseURL+"/api/v5/market/tickers?instType=SPOT", &resp); err != nil {
		return nil, fmt.Errorf("okx tickers: %w", err)
	}
	if resp.Code != "0" {
		return nil, fmt.Errorf("okx tickers: %s", resp.Msg)
	}

	out := make([]models.Ticker, 0, len(resp.Data))
	for _, d := range resp.Data {
		out = append(out, fromData(d))
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

func fromData(d tickerData) models.Ticker {
	return models.Ticker{
		Exchange:   "okx",
		Symbol:     symbols.ToUnified("okx", d.InstID),
		Last:       models.ParseField(d.Last),
		High:       models.ParseField(d.High24h),
		Low:        models.ParseField(d.Low24h),
		BaseVolume: models.ParseField(d.Vol24h),
		Bid:        models.ParseField(d.BidPx),
		Ask:        models.ParseField(d.AskPx),
	}
}
