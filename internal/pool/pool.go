package pool

import (
	"fmt"
	"strings"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/logger"
)

// Pool caches exchange clients for the duration of a single tool invocation.
// Each dispatch owns its own Pool and closes it when the call finishes, so no
// client outlives the request that created it.
type Pool struct {
	cfg       *config.Config
	registry  *exchange.Registry
	instances map[string]exchange.Exchange
	log       *logger.Log
}

func New(cfg *config.Config, registry *exchange.Registry) *Pool {
	return &Pool{
		cfg:       cfg,
		registry:  registry,
		instances: make(map[string]exchange.Exchange),
		log:       logger.GetLogger(),
	}
}

// Get returns the cached client for id, constructing it on first use. The id
// is matched case-insensitively.
func (p *Pool) Get(id string) (exchange.Exchange, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if ex, ok := p.instances[key]; ok {
		return ex, nil
	}
	if !p.registry.Has(key) {
		return nil, fmt.Errorf("unsupported exchange: %s", key)
	}

	ex, err := p.registry.New(key, p.cfg)
	if err != nil {
		return nil, err
	}
	p.instances[key] = ex
	return ex, nil
}

// Size reports the number of live clients in the pool.
func (p *Pool) Size() int {
	return len(p.instances)
}

// Close releases every client and empties the pool. Close failures are logged
// and do not stop the remaining clients from being released.
func (p *Pool) Close() {
	for id, ex := range p.instances {
		if err := ex.Close(); err != nil {
			p.log.WithComponent("pool").WithError(err).Warn(fmt.Sprintf("failed to close %s client", id))
		}
	}
	p.instances = make(map[string]exchange.Exchange)
}
