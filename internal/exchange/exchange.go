package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cryptoquery/config"
	"cryptoquery/models"
)

// ErrUnsupported marks operations a venue cannot serve, such as a bulk
// ticker listing the venue's API does not offer.
var ErrUnsupported = errors.New("operation not supported by exchange")

// Exchange is a live connector to a trading venue. Instances are owned by a
// per-invocation pool and must be closed after every tool call.
type Exchange interface {
	ID() string
	FetchTicker(ctx context.Context, symbol string) (*models.Ticker, error)
	FetchTickers(ctx context.Context) ([]models.Ticker, error)
	Close() error
}

// Factory constructs a connector from the application configuration.
type Factory func(cfg *config.Config) (Exchange, error)

// Registry maps exchange identifiers to connector factories. It is built once
// during wiring and read-only afterwards, so no locking is needed.
type Registry struct {
	factories map[string]Factory
	order     []string
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under a lowercased identifier. Registering the same
// identifier twice replaces the factory but keeps its listing position.
func (r *Registry) Register(id string, f Factory) {
	id = strings.ToLower(id)
	if _, ok := r.factories[id]; !ok {
		r.order = append(r.order, id)
	}
	r.factories[id] = f
}

// Supported returns the registered identifiers in registration order.
func (r *Registry) Supported() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether the identifier is registered. Matching is
// case-insensitive.
func (r *Registry) Has(id string) bool {
	_, ok := r.factories[strings.ToLower(id)]
	return ok
}

// New constructs a connector for the given identifier. Identifiers are
// case-insensitive; an unknown value is a user error, not a system fault.
func (r *Registry) New(id string, cfg *config.Config) (Exchange, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("unsupported exchange: %s", id)
	}
	return f(cfg)
}
