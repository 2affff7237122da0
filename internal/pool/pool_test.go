package pool

import (
	"context"
	"errors"
	"testing"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/models"
)

type fakeExchange struct {
	id     string
	closed *int
}

func (f *fakeExchange) ID() string { return f.id }

func (f *fakeExchange) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	return &models.Ticker{Exchange: f.id, Symbol: symbol}, nil
}

func (f *fakeExchange) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	return nil, nil
}

func (f *fakeExchange) Close() error {
	*f.closed++
	return nil
}

func newTestRegistry(built *int, closed *int) *exchange.Registry {
	reg := exchange.NewRegistry()
	factory := func(id string) exchange.Factory {
		return func(cfg *config.Config) (exchange.Exchange, error) {
			*built++
			return &fakeExchange{id: id, closed: closed}, nil
		}
	}
	reg.Register("binance", factory("binance"))
	reg.Register("kraken", factory("kraken"))
	return reg
}

func TestPoolReusesInstances(t *testing.T) {
	var built, closed int
	p := New(config.DefaultConfig(), newTestRegistry(&built, &closed))

	first, err := p.Get("binance")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := p.Get("BINANCE")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if first != second {
		t.Error("expected the same instance for case-variant ids")
	}
	if built != 1 {
		t.Errorf("expected 1 construction, got %d", built)
	}
	if p.Size() != 1 {
		t.Errorf("expected pool size 1, got %d", p.Size())
	}
}

func TestPoolUnsupportedExchange(t *testing.T) {
	var built, closed int
	p := New(config.DefaultConfig(), newTestRegistry(&built, &closed))

	if _, err := p.Get("dogecoinex"); err == nil {
		t.Fatal("expected an error for an unregistered exchange")
	}
	if p.Size() != 0 {
		t.Errorf("failed Get should not grow the pool, size=%d", p.Size())
	}
}

func TestPoolCloseReleasesAll(t *testing.T) {
	var built, closed int
	p := New(config.DefaultConfig(), newTestRegistry(&built, &closed))

	if _, err := p.Get("binance"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if _, err := p.Get("kraken"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	p.Close()

	if closed != 2 {
		t.Errorf("expected 2 closed clients, got %d", closed)
	}
	if p.Size() != 0 {
		t.Errorf("expected empty pool after Close, size=%d", p.Size())
	}

	// The pool is usable again after Close; clients are rebuilt fresh.
	if _, err := p.Get("binance"); err != nil {
		t.Fatalf("Get after Close failed: %v", err)
	}
	if built != 3 {
		t.Errorf("expected 3 constructions total, got %d", built)
	}
}

func TestPoolCloseLogsFailures(t *testing.T) {
	reg := exchange.NewRegistry()
	reg.Register("flaky", func(cfg *config.Config) (exchange.Exchange, error) {
		return &erroringExchange{}, nil
	})
	p := New(config.DefaultConfig(), reg)

	if _, err := p.Get("flaky"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Close must swallow client errors and still empty the pool.
	p.Close()
	if p.Size() != 0 {
		t.Errorf("expected empty pool after Close, size=%d", p.Size())
	}
}

type erroringExchange struct{}

func (e *erroringExchange) ID() string { return "flaky" }

func (e *erroringExchange) FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	return nil, errors.New("unavailable")
}

func (e *erroringExchange) FetchTickers(ctx context.Context) ([]models.Ticker, error) {
	return nil, errors.New("unavailable")
}

func (e *erroringExchange) Close() error { return errors.New("close failed") }
