package symbols

import "testing"

func TestToNative(t *testing.T) {
	tests := []struct {
		exchange string
		in       string
		want     string
	}{
		{"binance", "BTC/USDT", "BTCUSDT"},
		{"binance", "btc/usdt", "BTCUSDT"},
		{"mexc", "ETH/USDT", "ETHUSDT"},
		{"bybit", "BTC/USDT", "BTCUSDT"},
		{"kucoin", "BTC/USDT", "BTC-USDT"},
		{"okx", "BTC/USDT", "BTC-USDT"},
		{"coinbase", "BTC/USD", "BTC-USD"},
		{"kraken", "BTC/USDT", "XBTUSDT"},
		{"kraken", "ETH/USD", "ETHUSD"},
		{"huobi", "BTC/USDT", "btcusdt"},
		{"bitfinex", "BTC/USDT", "tBTCUST"},
		{"bitfinex", "ETH/USD", "tETHUSD"},
		{"hyperliquid", "BTC/USDT", "BTC"},
		{"binance", "BTCUSDT", "BTCUSDT"},
	}

	for _, tt := range tests {
		if got := ToNative(tt.exchange, tt.in); got != tt.want {
			t.Errorf("ToNative(%s, %s) = %s, want %s", tt.exchange, tt.in, got, tt.want)
		}
	}
}

func TestToUnified(t *testing.T) {
	tests := []struct {
		exchange string
		in       string
		want     string
	}{
		{"kucoin", "BTC-USDT", "BTC/USDT"},
		{"okx", "ETH-USDC", "ETH/USDC"},
		{"binance", "BTCUSDT", "BTC/USDT"},
		{"huobi", "btcusdt", "BTC/USDT"},
		{"bitfinex", "tBTCUST", "BTC/USDT"},
		{"bitfinex", "tETHUSD", "ETH/USD"},
		{"kraken", "XBTUSDT", "BTC/USDT"},
		{"binance", "WEIRD", "WEIRD"},
	}

	for _, tt := range tests {
		if got := ToUnified(tt.exchange, tt.in); got != tt.want {
			t.Errorf("ToUnified(%s, %s) = %s, want %s", tt.exchange, tt.in, got, tt.want)
		}
	}
}

func TestSplitPair(t *testing.T) {
	base, quote := SplitPair("btc/usdt")
	if base != "BTC" || quote != "USDT" {
		t.Errorf("SplitPair: got %s %s", base, quote)
	}

	base, quote = SplitPair("BTC")
	if base != "BTC" || quote != "" {
		t.Errorf("SplitPair without quote: got %s %s", base, quote)
	}
}
