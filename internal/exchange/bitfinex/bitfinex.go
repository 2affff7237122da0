package bitfinex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/symbols"
	"cryptoquery/logger"
	"cryptoquery/models"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api-pub.bitfinex.com"

// Bitfinex v2 tickers are positional arrays:
// [BID, BID_SIZE, ASK, ASK_SIZE, DAILY_CHANGE, DAILY_CHANGE_REL, LAST_PRICE,
// VOLUME, HIGH, LOW]. The bulk endpoint prepends the symbol.
const (
	idxBid    = 0
	idxAsk    = 2
	idxLast   = 6
	idxVolume = 7
	idxHigh   = 8
	idxLow    = 9
)

// Client is a Bitfinex spot connector over the public v2 REST API.
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
		baseURL: exchange.BaseURL(cfg.Exchanges.Endpoints.Bitfinex, defaultBaseURL),
		log:     logger.GetLogger(),
	}, nil
}

func (c *Client) ID() string { return "bitfinex" }

func (c *Client) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	native := symbols.ToNative("bitfinex", symbol)

	var row []json.Number
	reqURL := fmt.Sprintf("%s/v2/ticker/%s", c.baseURL, url.PathEscape(native))
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, reqURL, &row); err != nil {
		return nil, fmt.Errorf("bitfinex ticker %s: %w", symbol, err)
	}
	if len(row) <= idxLow {
		return nil, fmt.Errorf("bitfinex returned a short ticker row for %s", symbol)
	}

	t := fromRow(row, 0)
	t.Symbol = symbol
	logger.IncrementTickerFetch(1)
	return &t, nil
}

func (c *Client) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	var rows [][]json.RawMessage
	if err := exchange.GetJSON(ctx, c.rest, c.limiter, c.baseURL+"/v2/tickers?symbols=ALL", &rows); err != nil {
		return nil, fmt.Errorf("bitfinex tickers: %w", err)
	}

	out := make([]models.Ticker, 0, len(rows))
	for _, raw := range rows {
		if len(raw) <= idxLow+1 {
			continue
		}
		var sym string
		if err := json.Unmarshal(raw[0], &sym); err != nil {
			continue
		}
		// Funding tickers ("f" prefix) carry a different layout; only
		// trading pairs belong in the listing.
		if !strings.HasPrefix(sym, "t") {
			continue
		}
		row := make([]json.Number, 0, len(raw)-1)
		ok := true
		for _, cell := range raw[1:] {
			var n json.Number
			if err := json.Unmarshal(cell, &n); err != nil {
				ok = false
				break
			}
			row = append(row, n)
		}
		if !ok {
			continue
		}
		t := fromRow(row, 0)
		t.Symbol = symbols.ToUnified("bitfinex", sym)
		out = append(out, t)
	}
	logger.IncrementTickerFetch(len(out))
	return out, nil
}

func (c *Client) Close() error { return nil }

func fromRow(row []json.Number, offset int) models.Ticker {
	return models.Ticker{
		Exchange:   "bitfinex",
		Last:       numberAt(row, offset+idxLast),
		High:       numberAt(row, offset+idxHigh),
		Low:        numberAt(row, offset+idxLow),
		BaseVolume: numberAt(row, offset+idxVolume),
		Bid:        numberAt(row, offset+idxBid),
		Ask:        numberAt(row, offset+idxAsk),
	}
}

func numberAt(row []json.Number, i int) decimal.NullDecimal {
	if i < len(row) {
		return models.ParseField(row[i].String())
	}
	return decimal.NullDecimal{}
}
