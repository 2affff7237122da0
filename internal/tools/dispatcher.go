package tools

import (
	"context"
	"fmt"
	"time"

	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	"cryptoquery/internal/pool"
	"cryptoquery/logger"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// Dispatcher routes tool invocations to exchange calls and renders the
// results as text. Every invocation gets its own client pool, closed before
// the response goes out, so connections never leak across calls.
type Dispatcher struct {
	cfg      *config.Config
	registry *exchange.Registry
	log      *logger.Log
}

func NewDispatcher(cfg *config.Config, registry *exchange.Registry) *Dispatcher {
	return &Dispatcher{
		cfg:      cfg,
		registry: registry,
		log:      logger.GetLogger(),
	}
}

// Handle adapts Dispatch to the MCP tool handler signature. Failures become
// textual error results rather than protocol faults, so the error return is
// always nil.
func (d *Dispatcher) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return d.Dispatch(ctx, req.Params.Name, req.GetArguments()), nil
}

// Dispatch runs one tool call against a fresh per-invocation pool.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) *mcp.CallToolResult {
	invocationID := uuid.New().String()
	start := time.Now()
	entry := d.log.WithComponent("dispatcher").WithFields(logger.Fields{
		"invocation_id": invocationID,
		"tool":          name,
	})

	p := pool.New(d.cfg, d.registry)
	defer p.Close()

	text, err := d.run(ctx, p, name, args)
	logger.LogPerformanceEntry(entry, "dispatcher", name, time.Since(start), logger.Fields{
		"pool_size": p.Size(),
	})
	if err != nil {
		entry.WithError(err).Warn("tool call failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error accessing cryptocurrency data: %v", err))
	}

	logger.IncrementToolCall(len(text))
	return mcp.NewToolResultText(text)
}

func (d *Dispatcher) run(ctx context.Context, p *pool.Pool, name string, args map[string]interface{}) (string, error) {
	// list-exchanges needs no connector at all.
	if name == "list-exchanges" {
		return formatExchangeList(d.registry.Supported()), nil
	}

	exchangeID := stringOr(args, "exchange", d.cfg.Server.DefaultExchange)
	ex, err := p.Get(exchangeID)
	if err != nil {
		return "", err
	}

	switch name {
	case "get-price":
		symbol, err := requireSymbol(args)
		if err != nil {
			return "", err
		}
		t, err := ex.FetchTicker(ctx, symbol)
		if err != nil {
			return "", err
		}
		return formatPrice(t), nil

	case "get-market-summary":
		symbol, err := requireSymbol(args)
		if err != nil {
			return "", err
		}
		t, err := ex.FetchTicker(ctx, symbol)
		if err != nil {
			return "", err
		}
		return formatSummary(t), nil

	case "get-top-volumes":
		limit := intOr(args, "limit", d.cfg.Server.TopVolumesLimit)
		if limit <= 0 {
			limit = d.cfg.Server.TopVolumesLimit
		}
		tickers, err := ex.FetchTickers(ctx)
		if err != nil {
			return "", err
		}
		return formatTopVolumes(ex.ID(), tickers, limit), nil

	default:
		return "", fmt.Errorf("Unknown tool: %s", name)
	}
}
