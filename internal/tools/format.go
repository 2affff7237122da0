package tools

import (
	"fmt"
	"sort"
	"strings"

	"cryptoquery/internal/symbols"
	"cryptoquery/models"

	"github.com/shopspring/decimal"
)

// renderField prints a nullable market value, using N/A for fields the venue
// did not report.
func renderField(d decimal.NullDecimal) string {
	if !d.Valid {
		return "N/A"
	}
	return d.Decimal.String()
}

// formatPrice renders the one-line get-price answer. The quote currency is
// appended when the symbol carries one, e.g.
// "Current price of BTC/USDT on BINANCE: 67000.5 USDT".
func formatPrice(t *models.Ticker) string {
	_, quote := symbols.SplitPair(t.Symbol)
	line := fmt.Sprintf("Current price of %s on %s: %s",
		t.Symbol, strings.ToUpper(t.Exchange), renderField(t.Last))
	if quote != "" {
		line += " " + quote
	}
	return line
}

// formatTicker renders the full field dump used by market summaries and
// top-volume listings. Each block is terminated by a separator line.
func formatTicker(t *models.Ticker) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Exchange: %s\n", strings.ToUpper(t.Exchange))
	fmt.Fprintf(&b, "Symbol: %s\n", t.Symbol)
	fmt.Fprintf(&b, "Last Price: %s\n", renderField(t.Last))
	fmt.Fprintf(&b, "24h High: %s\n", renderField(t.High))
	fmt.Fprintf(&b, "24h Low: %s\n", renderField(t.Low))
	fmt.Fprintf(&b, "24h Volume: %s\n", renderField(t.BaseVolume))
	fmt.Fprintf(&b, "Bid: %s\n", renderField(t.Bid))
	fmt.Fprintf(&b, "Ask: %s\n", renderField(t.Ask))
	b.WriteString("---")
	return b.String()
}

func formatSummary(t *models.Ticker) string {
	return fmt.Sprintf("Market summary for %s:\n\n%s", t.Symbol, formatTicker(t))
}

// formatExchangeList renders the registry keys as an uppercase bulleted list.
func formatExchangeList(ids []string) string {
	var b strings.Builder
	b.WriteString("Supported exchanges:\n")
	for _, id := range ids {
		fmt.Fprintf(&b, "\n- %s", strings.ToUpper(id))
	}
	return b.String()
}

// topByVolume sorts tickers by descending 24h volume and keeps the first
// limit entries. The sort is stable, so ties keep the venue's listing order.
// Missing volume counts as zero.
func topByVolume(tickers []models.Ticker, limit int) []models.Ticker {
	sorted := make([]models.Ticker, len(tickers))
	copy(sorted, tickers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].VolumeOrZero().GreaterThan(sorted[j].VolumeOrZero())
	})
	if limit >= 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted
}

func formatTopVolumes(exchangeID string, tickers []models.Ticker, limit int) string {
	top := topByVolume(tickers, limit)
	blocks := make([]string, 0, len(top))
	for i := range top {
		blocks = append(blocks, formatTicker(&top[i]))
	}
	return fmt.Sprintf("Top %d pairs by volume on %s:\n\n%s",
		limit, strings.ToUpper(exchangeID), strings.Join(blocks, "\n"))
}
