package kucoin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	sdkapi "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/api"
	spotmarket "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/generate/spot/market"
	sdktype "github.com/Kucoin/kucoin-universal-sdk/sdk/golang/pkg/types"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.kucoin.com"

// Client is a KuCoin spot connector. The single-ticker stats call goes
// through the universal SDK; the bulk listing uses the plain REST endpoint,
// which the SDK does not expose in one request.
type Client struct {
	marketAPI spotmarket.MarketAPI
	rest      *http.Client
	limiter   *rate.Limiter
	baseURL   string
	log       *logger.Log
}

// New builds the connector from the shared transport settings.
func New(cfg *config.Config) (exchange.Exchange, error) {
	baseURL := exchange.BaseURL(cfg.Exchanges.Endpoints.Kucoin, defaultBaseURL)

	transportOpt := sdktype.NewTransportOptionBuilder().
		SetMaxIdleConns(cfg.Exchanges.ConnectionPool.MaxIdleConns).
		SetMaxIdleConnsPerHost(cfg.Exchanges.ConnectionPool.MaxIdleConns).
		SetMaxConnsPerHost(cfg.Exchanges.ConnectionPool.MaxConnsPerHost).
		SetIdleConnTimeout(cfg.Exchanges.ConnectionPool.IdleConnTimeout).
		SetTimeout(cfg.Exchanges.Timeout).
		Build()

	option := sdktype.NewClientOptionBuilder().
		WithSpotEndpoint(baseURL).
		WithTransportOption(transportOpt).
		Build()

	client := sdkapi.NewClient(option)
	marketAPI := client.RestService().GetSpotService().GetMarketAPI()

	log := logger.GetLogger()
	log.WithComponent("kucoin").WithFields(logger.Fields{
		"base_url": baseURL,
	}).Debug("kucoin connector initialized")

	return &Client{
		marketAPI: marketAPI,
		rest:      exchange.NewHTTPClient(cfg),
		limiter:   exchange.NewLimiter(cfg),
		baseURL:   baseURL,
		log:       log,
	}, nil
}

func (c *Client) ID() string { return "kucoin" }

// FetchTicker returns the 24h stats for a single pair via the SDK.
func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("kucoin", symbol)

	req := spotmarket.NewGet24hrStatsReqBuilder().SetSymbol(native).Build()
	resp, err := c.marketAPI.Get24hrStats(req, ctx)
	if err != nil {
		return nil, fmt.Errorf("kucoin ticker %s: %w", symbol, err)
	}

	// The generated response models marshal with the venue's JSON keys, so a
	// round trip gives a stable view of the fields we need.
	payload, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("kucoin ticker %s: %w", symbol, err)
	}

	var stats struct {
		Last string `json:"last"`
		High string `json:"high"`
		Low  string `json:"low"`
		Vol  string `json:"vol"`
		Buy  string `json:"buy"`
		Sell string `json:"sell"`
	}
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, fmt.Errorf("kucoin ticker %s: %w", symbol, err)
	}

	logger.IncrementTickerFetch(1)
	return &models.Ticker{
		Exchange:   "kucoin",
		Symbol:     symbol,
		Last:       models.ParseField(stats.Last),
		High:       models.ParseField(stats.High),
		Low:        models.ParseField(stats.Low),
		BaseVolume: models.ParseField(stats.Vol),
		Bid:        models.ParseField(stats.Buy),
		Ask:        models.ParseField(stats.Sell),
	}, nil
}

// FetchTickers returns the full market listing via the REST bulk endpoint.
func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	var resp struct {
		Code string `json:"code"`
		Data struct {
			Time   int64 `json:"time"`
			Ticker []struct {
				Symbol string `json:"symbol"`
				Buy    string `json:"buy"`
				Sell   string `json:"sell"`
				Last   string `json:"last"`
				Vol    string `json:"vol"`
				High   string `json:"high"`
				Low    string `json:"low"`
			} `json:"ticker"`
		} `json:"data"`
	}

	if err := exchange.GetJSON(ctx, c.rest, c.limiter, c.baseURL+"/api/v1/market/allTickers", &resp); err != nil {
		return nil, fmt.Errorf("kucoin tickers: %w", err)
	}

	out := make([]models.Ticker, 0, len(resp.Data.Ticker))
	for _, t := range resp.Data.Ticker {
		out = append(out, models.Ticker{
			Exchange:   "kucoin",
			Symbol:     symbols.ToUnified("kucoin", t.Symbol),
			Last:       models.ParseField(t.Last),
			High:       models.ParseField(t.High),
			Low:        models.ParseField(t.Low),
			BaseVolume: models.ParseField(t.Vol),
			Bid:        models.ParseField(t.Buy),
			Ask:        models.ParseField(t.Sell),
		})
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }
