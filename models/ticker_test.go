package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
		want  string
	}{
		{"68123.45", true, "68123.45"},
		{"0", true, "0"},
		{"", false, ""},
		{"N/A", false, ""},
		{"1e3", true, "1000"},
	}

	for _, tt := range tests {
		got := ParseField(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ParseField(%q) valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}
		if tt.valid && got.Decimal.String() != tt.want {
			t.Errorf("ParseField(%q) = %s, want %s", tt.in, got.Decimal.String(), tt.want)
		}
	}
}

func TestVolumeOrZero(t *testing.T) {
	withVolume := Ticker{BaseVolume: ParseField("42.5")}
	if got := withVolume.VolumeOrZero(); !got.Equal(decimal.RequireFromString("42.5")) {
		t.Errorf("unexpected volume: %s", got)
	}

	missing := Ticker{}
	if got := missing.VolumeOrZero(); !got.IsZero() {
		t.Errorf("missing volume should be zero, got %s", got)
	}
}

func TestFieldFromFloat(t *testing.T) {
	got := FieldFromFloat(0.25)
	if !got.Valid || got.Decimal.String() != "0.25" {
		t.Errorf("FieldFromFloat(0.25) = %v %s", got.Valid, got.Decimal.String())
	}
}
