package symbols

import "strings"

// SplitPair splits a unified BASE/QUOTE symbol such as "BTC/USDT". The quote
// is empty when the symbol carries no separator.
func SplitPair(sym string) (base, quote string) {
	sym = strings.ToUpper(strings.TrimSpace(sym))
	if i := strings.Index(sym, "/"); i >= 0 {
		return sym[:i], sym[i+1:]
	}
	return sym, ""
}

// ToNative converts a unified BASE/QUOTE symbol to the venue's native format.
// Examples:
//
//	binance  BTC/USDT -> BTCUSDT
//	kucoin   BTC/USDT -> BTC-USDT
//	kraken   BTC/USDT -> XBTUSDT
//	bitfinex BTC/USDT -> tBTCUST
//	huobi    BTC/USDT -> btcusdt
//
// Venues without a listed rule use the plain concatenated form.
func ToNative(exchange, sym string) string {
	base, quote := SplitPair(sym)

	switch strings.ToLower(exchange) {
	case "kucoin", "okx", "coinbase":
		if quote == "" {
			return base
		}
		return base + "-" + quote
	case "kraken":
		if base == "BTC" {
			base = "XBT"
		}
		return base + quote
	case "huobi":
		return strings.ToLower(base + quote)
	case "bitfinex":
		if quote == "USDT" {
			quote = "UST"
		}
		return "t" + base + quote
	case "hyperliquid":
		return base
	default:
		// binance, bybit, mexc already use the concatenated form
		return base + quote
	}
}

// ToUnified converts a venue-native symbol back to the unified BASE/QUOTE
// form where the native format makes the split unambiguous. Symbols that
// cannot be split are returned unchanged.
func ToUnified(exchange, native string) string {
	native = strings.TrimSpace(native)

	switch strings.ToLower(exchange) {
	case "kucoin", "okx", "coinbase":
		return strings.ReplaceAll(strings.ToUpper(native), "-", "/")
	case "huobi":
		return splitConcatenated(strings.ToUpper(native))
	case "bitfinex":
		s := strings.ToUpper(strings.TrimPrefix(native, "t"))
		// Bitfinex shortens the USDT quote to UST.
		if strings.HasSuffix(s, "UST") {
			s = strings.TrimSuffix(s, "UST") + "USDT"
		}
		return splitConcatenated(s)
	case "kraken":
		s := strings.ToUpper(native)
		if strings.HasPrefix(s, "XBT") {
			s = "BTC" + s[3:]
		}
		return splitConcatenated(s)
	default:
		return splitConcatenated(strings.ToUpper(native))
	}
}

// quoteCurrencies are tried longest-first when splitting concatenated pairs.
var quoteCurrencies = []string{"USDT", "USDC", "TUSD", "BUSD", "USD", "EUR", "GBP", "BTC", "ETH", "BNB"}

func splitConcatenated(sym string) string {
	for _, q := range quoteCurrencies {
		if strings.HasSuffix(sym, q) && len(sym) > len(q) {
			return sym[:len(sym)-len(q)] + "/" + q
		}
	}
	return sym
}
