package models

import (
	"github.com/shopspring/decimal"
)

// Ticker is a snapshot of market state for a trading pair as reported by an
// exchange. Fields a venue does not provide stay invalid and render as N/A.
type Ticker struct {
	Exchange   string              `json:"exchange"`
	Symbol     string              `json:"symbol"`
	Last       decimal.NullDecimal `json:"last"`
	High       decimal.NullDecimal `json:"high"`
	Low        decimal.NullDecimal `json:"low"`
	BaseVolume decimal.NullDecimal `json:"baseVolume"`
	Bid        decimal.NullDecimal `json:"bid"`
	Ask        decimal.NullDecimal `json:"ask"`
}

// VolumeOrZero returns the 24h base volume, treating a missing value as zero
// so ordering by volume stays total.
func (t *Ticker) VolumeOrZero() decimal.Decimal {
	if !t.BaseVolume.Valid {
		return decimal.Zero
	}
	return t.BaseVolume.Decimal
}

// ParseField converts an exchange-reported price or size string into a
// nullable decimal. Empty and unparsable values are treated as absent rather
// than failing the whole ticker.
func ParseField(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

// FieldFromFloat wraps a value from venues that report numeric JSON.
func FieldFromFloat(f float64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}
