package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.hyperliquid.xyz"

// Client is a Hyperliquid connector. The whole public API hangs off a single
// POST /info endpoint whose request body selects the query type.
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
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Hyperliquid, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "hyperliquid" }

type assetCtx struct {
	DayNtlVlm string   `json:"dayNtlVlm"`
	MarkPx    string   `json:"markPx"`
	MidPx     string   `json:"midPx"`
	PrevDayPx string   `json:"prevDayPx"`
	ImpactPxs []string `json:"impactPxs"`
}

// fetchUniverse runs the metaAndAssetCtxs query. The response is a two element
// array: asset metadata first, then per asset market state in the same order.
func (c *Client) fetchUniverse(ctx context.Context) ([]string, []assetCtx, error) {
	body := map[string]string{"type": "metaAndAssetCtxs"}

	var raw []json.RawMessage
	if err := exchange.PostJSON(ctx, c.rest, c.limiter, c.baseURL+"/info", body, &raw); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid info: %w", err)
	}
	if len(raw) < 2 {
		return nil, nil, fmt.Errorf("hyperliquid info: response has %d elements, want 2", len(raw))
	}

	var meta struct {
		Universe []struct {
			Name string `json:"name"`
		} `json:"universe"`
	}
	if err := json.Unmarshal(raw[0], &meta); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid meta: %w", err)
	}

	var ctxs []assetCtx
	if err := json.Unmarshal(raw[1], &ctxs); err != nil {
		return nil, nil, fmt.Errorf("hyperliquid asset contexts: %w", err)
	}

	names := make([]string, 0, len(meta.Universe))
	for _, u := range meta.Universe {
		names = append(names, u.Name)
	}
	return names, ctxs, nil
}

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	coin := symbols.ToNative("hyperliquid", symbol)

	names, ctxs, err := c.fetchUniverse(ctx)
	if err != nil {
		return nil, err
	}
	for i, name := range names {
		if !strings.EqualFold(name, coin) || i >= len(ctxs) {
			continue
		}
		t := fromCtx(name, ctxs[i])
		t.Symbol = symbol
		logger.IncrementTickerFetch(1)
		return &t, nil
	}
	return nil, fmt.Errorf("hyperliquid has no market for %s", symbol)
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	names, ctxs, err := c.fetchUniverse(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Ticker, 0, len(names))
	for i, name := range names {
		if i >= len(ctxs) {
			break
		}
		out = append(out, fromCtx(name, ctxs[i]))
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

func fromCtx(name string, a assetCtx) models.Ticker {
	last := models.ParseField(a.MidPx)
	if !last.Valid {
		last = models.ParseField(a.MarkPx)
	}

	var bid, ask decimal.NullDecimal
	if len(a.ImpactPxs) >= 2 {
		bid = models.ParseField(a.ImpactPxs[0])
		ask = models.ParseField(a.ImpactPxs[1])
	}

	// Perp markets quote in USD and have no 24h high/low in this query.
	return models.Ticker{
		Exchange:   "hyperliquid",
		Symbol:     symbols.ToUnified("hyperliquid", name),
		Last:       last,
		BaseVolume: models.ParseField(a.DayNtlVlm),
		Bid:        bid,
		Ask:        ask,
	}
}
