package server

import (
	"cryptoquery/config"
	"cryptoquery/internal/exchange"
	binanceex "cryptoquery/internal/exchange/binance"
	bitfinexex "cryptoquery/internal/exchange/bitfinex"
	bybitex "cryptoquery/internal/exchange/bybit"
	coinbaseex "cryptoquery/internal/exchange/coinbase"
	huobiex "cryptoquery/internal/exchange/huobi"
	hyperliquidex "cryptoquery/internal/exchange/hyperliquid"
	krakenex "cryptoquery/internal/exchange/kraken"
	kucoinex "cryptoquery/internal/exchange/kucoin"
	mexcex "cryptoquery/internal/exchange/mexc"
	okxex "cryptoquery/internal/exchange/okx"
	"cryptoquery/internal/tools"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// DefaultRegistry wires every shipped connector. Registration order is the
// order list-exchanges reports.
func DefaultRegistry() *exchange.Registry {
	reg := exchange.NewRegistry()
	reg.Register("binance", binanceex.New)
	reg.Register("coinbase", coinbaseex.New)
	reg.Register("kraken", krakenex.New)
	reg.Register("kucoin", kucoinex.New)
	reg.Register("hyperliquid", hyperliquidex.New)
	reg.Register("huobi", huobiex.New)
	reg.Register("bitfinex", bitfinexex.New)
	reg.Register("bybit", bybitex.New)
	reg.Register("okx", okxex.New)
	reg.Register("mexc", mexcex.New)
	return reg
}

// New assembles the MCP server: catalog advertised, every tool routed through
// one dispatcher.
func New(cfg *config.Config) *mcpserver.MCPServer {
	registry := DefaultRegistry()
	dispatcher := tools.NewDispatcher(cfg, registry)

	s := mcpserver.NewMCPServer(
		cfg.Cryptoquery.Name,
		cfg.Cryptoquery.Version,
		mcpserver.WithToolCapabilities(false),
	)
	for _, tool := range tools.Catalog(cfg, registry) {
		s.AddTool(tool, dispatcher.Handle)
	}
	return s
}

// ServeStdio blocks serving the MCP protocol over stdin and stdout until the
// client disconnects.
func ServeStdio(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}
