package tools

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// requireString fetches a mandatory string argument from the call arguments.
func requireString(args map[string]interface{}, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("argument %s must be a non-empty string", key)
	}
	return strings.TrimSpace(s), nil
}

// requireSymbol fetches the symbol argument and uppercases it, so responses
// echo the canonical pair form regardless of the caller's casing.
func requireSymbol(args map[string]interface{}) (string, error) {
	symbol, err := requireString(args, "symbol")
	if err != nil {
		return "", err
	}
	return strings.ToUpper(symbol), nil
}

// stringOr fetches an optional string argument, falling back when absent or
// empty.
func stringOr(args map[string]interface{}, key, fallback string) string {
	if raw, ok := args[key]; ok {
		if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fallback
}

// intOr fetches an optional integer argument. JSON decoding hands numbers
// over as float64, but callers also send plain ints and numeric strings.
func intOr(args map[string]interface{}, key string, fallback int) int {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}
