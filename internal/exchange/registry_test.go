package exchange

import (
	"context"
	"strings"
	"testing"

	"cryptoquery/config"
	"cryptoquery/models"
)

type stubExchange struct {
	id string
}

func (s *stubExchange) ID() string { return s.id }
func (s *stubExchange) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	return &models.Ticker{Exchange: s.id, Symbol: symbol}, nil
}
func (s *stubExchange) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	return nil, nil
}
func (s *stubExchange) Close() error { return nil }

func stubFactory(id string) Factory {
	return func(cfg *config.Config) (Exchange, error) {
		return &stubExchange{id: id}, nil
	}
}

func TestRegistryCaseInsensitive(t *testing.T) {
	reg := NewRegistry()
	reg.Register("binance", stubFactory("binance"))

	cfg := config.DefaultConfig()
	for _, id := range []string{"binance", "BINANCE", "Binance", " binance "} {
		ex, err := reg.New(id, cfg)
		if err != nil {
			t.Fatalf("New(%q) failed: %v", id, err)
		}
		if ex.ID() != "binance" {
			t.Errorf("New(%q) resolved to %s", id, ex.ID())
		}
	}
}

func TestRegistryUnsupported(t *testing.T) {
	reg := NewRegistry()
	reg.Register("binance", stubFactory("binance"))

	_, err := reg.New("dogecoinex", config.DefaultConfig())
	if err == nil {
		t.Fatalf("expected error for unsupported exchange")
	}
	if !strings.Contains(err.Error(), "unsupported exchange: dogecoinex") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestRegistrySupportedOrder(t *testing.T) {
	reg := NewRegistry()
	reg.Register("kraken", stubFactory("kraken"))
	reg.Register("binance", stubFactory("binance"))
	reg.Register("KRAKEN", stubFactory("kraken")) // replacement keeps position

	got := reg.Supported()
	want := []string{"kraken", "binance"}
	if len(got) != len(want) {
		t.Fatalf("Supported() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Supported()[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	if !reg.Has("Binance") || reg.Has("ftx") {
		t.Errorf("Has misbehaves: %v %v", reg.Has("Binance"), reg.Has("ftx"))
	}
}
