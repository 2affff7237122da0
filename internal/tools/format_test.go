package tools

import (
	"strings"
	"testing"

	"cryptoquery/models"

	"github.com/shopspring/decimal"
)

func field(s string) decimal.NullDecimal {
	return models.ParseField(s)
}

func TestFormatPrice(t *testing.T) {
	tick := &models.Ticker{
		Exchange: "binance",
		Symbol:   "BTC/USDT",
		Last:     field("67000.5"),
	}
	got := formatPrice(tick)
	want := "Current price of BTC/USDT on BINANCE: 67000.5 USDT"
	if got != want {
		t.Errorf("formatPrice = %q, want %q", got, want)
	}
}

func TestFormatPriceNoQuote(t *testing.T) {
	tick := &models.Ticker{
		Exchange: "hyperliquid",
		Symbol:   "BTC",
		Last:     field("67000.5"),
	}
	got := formatPrice(tick)
	if got != "Current price of BTC on HYPERLIQUID: 67000.5" {
		t.Errorf("unexpected price line: %q", got)
	}
}

func TestFormatTickerMissingFields(t *testing.T) {
	tick := &models.Ticker{
		Exchange: "kraken",
		Symbol:   "ETH/USD",
		Last:     field("3500"),
	}
	got := formatTicker(tick)

	for _, want := range []string{
		"Exchange: KRAKEN",
		"Symbol: ETH/USD",
		"Last Price: 3500",
		"24h High: N/A",
		"24h Low: N/A",
		"24h Volume: N/A",
		"Bid: N/A",
		"Ask: N/A",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("formatTicker missing %q in:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "---") {
		t.Errorf("formatTicker should end with the separator, got:\n%s", got)
	}
}

func TestFormatSummaryHeader(t *testing.T) {
	tick := &models.Ticker{Exchange: "binance", Symbol: "BTC/USDT"}
	got := formatSummary(tick)
	if !strings.HasPrefix(got, "Market summary for BTC/USDT:\n\n") {
		t.Errorf("unexpected summary header: %q", got)
	}
}

func TestFormatExchangeList(t *testing.T) {
	got := formatExchangeList([]string{"binance", "kraken"})
	want := "Supported exchanges:\n\n- BINANCE\n- KRAKEN"
	if got != want {
		t.Errorf("formatExchangeList = %q, want %q", got, want)
	}
}

func TestTopByVolumeOrderAndTruncation(t *testing.T) {
	tickers := []models.Ticker{
		{Symbol: "A/USDT", BaseVolume: field("10")},
		{Symbol: "B/USDT", BaseVolume: field("30")},
		{Symbol: "C/USDT"},
		{Symbol: "D/USDT", BaseVolume: field("20")},
	}

	top := topByVolume(tickers, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	wantOrder := []string{"B/USDT", "D/USDT", "A/USDT"}
	for i, want := range wantOrder {
		if top[i].Symbol != want {
			t.Errorf("position %d: got %s, want %s", i, top[i].Symbol, want)
		}
	}
}

func TestTopByVolumeStableTies(t *testing.T) {
	tickers := []models.Ticker{
		{Symbol: "A/USDT", BaseVolume: field("5")},
		{Symbol: "B/USDT", BaseVolume: field("5")},
		{Symbol: "C/USDT", BaseVolume: field("5")},
	}

	top := topByVolume(tickers, 10)
	wantOrder := []string{"A/USDT", "B/USDT", "C/USDT"}
	for i, want := range wantOrder {
		if top[i].Symbol != want {
			t.Errorf("ties must keep fetch order: position %d got %s, want %s", i, top[i].Symbol, want)
		}
	}
}

func TestTopByVolumeMissingVolumeIsZero(t *testing.T) {
	tickers := []models.Ticker{
		{Symbol: "A/USDT"},
		{Symbol: "B/USDT", BaseVolume: field("1")},
	}

	top := topByVolume(tickers, 2)
	if top[0].Symbol != "B/USDT" {
		t.Errorf("missing volume should sort last, got %s first", top[0].Symbol)
	}
}

func TestFormatTopVolumesHeader(t *testing.T) {
	tickers := []models.Ticker{
		{Exchange: "binance", Symbol: "BTC/USDT", BaseVolume: field("100")},
	}
	got := formatTopVolumes("binance", tickers, 5)
	if !strings.HasPrefix(got, "Top 5 pairs by volume on BINANCE:\n\n") {
		t.Errorf("unexpected header: %q", got)
	}
}
