package tools

import (
	"cryptoquery/config"
	"cryptoquery/internal/exchange"

	"github.com/mark3labs/mcp-go/mcp"
)

// Catalog builds the static tool descriptors advertised to callers. The
// exchange enum and defaults come from the registry and configuration, so the
// catalog never drifts from what the dispatcher can actually serve.
func Catalog(cfg *config.Config, registry *exchange.Registry) []mcp.Tool {
	supported := registry.Supported()
	defaultExchange := cfg.Server.DefaultExchange

	return []mcp.Tool{
		mcp.NewTool("get-price",
			mcp.WithDescription("Get current price of a cryptocurrency pair from a specific exchange"),
			mcp.WithString("symbol",
				mcp.Required(),
				mcp.Description("Trading pair symbol (e.g., BTC/USDT)"),
			),
			mcp.WithString("exchange",
				mcp.Description("Exchange to query"),
				mcp.Enum(supported...),
				mcp.DefaultString(defaultExchange),
			),
		),
		mcp.NewTool("get-market-summary",
			mcp.WithDescription("Get detailed market summary for a cryptocurrency pair"),
			mcp.WithString("symbol",
				mcp.Required(),
				mcp.Description("Trading pair symbol (e.g., BTC/USDT)"),
			),
			mcp.WithString("exchange",
				mcp.Description("Exchange to query"),
				mcp.Enum(supported...),
				mcp.DefaultString(defaultExchange),
			),
		),
		mcp.NewTool("get-top-volumes",
			mcp.WithDescription("Get top cryptocurrency pairs by trading volume"),
			mcp.WithNumber("limit",
				mcp.Description("Number of pairs to return"),
				mcp.DefaultNumber(float64(cfg.Server.TopVolumesLimit)),
			),
			mcp.WithString("exchange",
				mcp.Description("Exchange to query"),
				mcp.Enum(supported...),
				mcp.DefaultString(defaultExchange),
			),
		),
		mcp.NewTool("list-exchanges",
			mcp.WithDescription("List all supported cryptocurrency exchanges"),
		),
	}
}
